package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/api-sage/bank-ledger-service/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger-service/internal/commons"
	"github.com/api-sage/bank-ledger-service/internal/domain"
)

type AdminService interface {
	AddCustomer(ctx context.Context, req models.CreateCustomerRequest) (commons.Response[models.CustomerResponse], error)
	AddAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error)
	DeactivateCustomer(ctx context.Context, customerID string) (commons.Response[string], error)
	AddBank(ctx context.Context, req models.AddBankRequest) (commons.Response[models.BankResponse], error)
	ListBanks(ctx context.Context) (commons.Response[[]models.BankResponse], error)
	ViewAllTransactions(ctx context.Context, page, size int) (commons.Response[models.PageResponse[models.TransactionRecord]], error)
}

type AdminController struct {
	service AdminService
}

func NewAdminController(service AdminService) *AdminController {
	return &AdminController{service: service}
}

func (c *AdminController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"/admin/customers":           c.addCustomer,
		"/admin/accounts":            c.addAccount,
		"/admin/banks":               c.banks,
		"/admin/deactivate-customer": c.deactivateCustomer,
		"/admin/transactions":        c.allTransactions,
	}
	for pattern, handlerFunc := range routes {
		handler := http.Handler(handlerFunc)
		if authMiddleware != nil {
			handler = authMiddleware(handler)
		}
		mux.Handle(pattern, handler)
	}
}

func (c *AdminController) addCustomer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.CustomerResponse]("method not allowed"))
		return
	}

	var req models.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CustomerResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.AddCustomer(r.Context(), req)
	if err != nil {
		logError(r, err, nil)
		status := adminErrorStatus(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AdminController) addAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AccountResponse]("method not allowed"))
		return
	}

	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.AddAccount(r.Context(), req)
	if err != nil {
		logError(r, err, nil)
		status := adminErrorStatus(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AdminController) banks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.addBank(w, r)
	case http.MethodGet:
		c.listBanks(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.BankResponse]("method not allowed"))
	}
}

func (c *AdminController) addBank(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.AddBankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.BankResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.AddBank(r.Context(), req)
	if err != nil {
		logError(r, err, nil)
		status := adminErrorStatus(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AdminController) listBanks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ListBanks(r.Context())
	if err != nil {
		logError(r, err, nil)
		status := adminErrorStatus(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

type deactivateCustomerRequest struct {
	CustomerID string `json:"customerId"`
}

func (c *AdminController) deactivateCustomer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[string]("method not allowed"))
		return
	}

	var req deactivateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[string]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.DeactivateCustomer(r.Context(), req.CustomerID)
	if err != nil {
		logError(r, err, nil)
		status := adminErrorStatus(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AdminController) allTransactions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.PageResponse[models.TransactionRecord]]("method not allowed"))
		return
	}

	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 10)

	response, err := c.service.ViewAllTransactions(r.Context(), page, size)
	if err != nil {
		logError(r, err, nil)
		status := adminErrorStatus(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func adminErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateRecord):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
