package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/api-sage/bank-ledger-service/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger-service/internal/commons"
	"github.com/api-sage/bank-ledger-service/internal/domain"
	"github.com/api-sage/bank-ledger-service/internal/logger"
)

type LedgerService interface {
	PerformTransaction(ctx context.Context, customerID string, req models.TransactionRequest) (commons.Response[models.TransactionRecord], error)
	ListTransactions(ctx context.Context, customerID string, page, size int) (commons.Response[models.PageResponse[models.TransactionRecord]], error)
}

type LedgerController struct {
	service LedgerService
}

func NewLedgerController(service LedgerService) *LedgerController {
	return &LedgerController{service: service}
}

func (c *LedgerController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	handler := http.Handler(http.HandlerFunc(c.transactions))
	if authMiddleware != nil {
		handler = authMiddleware(handler)
	}

	mux.Handle("/transactions", handler)
}

func (c *LedgerController) transactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.perform(w, r)
	case http.MethodGet:
		c.list(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransactionRecord]("method not allowed"))
	}
}

func (c *LedgerController) perform(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	customerID := customerIdentity(r)
	if customerID == "" {
		response := commons.ErrorResponse[models.TransactionRecord]("customer identity is missing")
		writeJSON(w, http.StatusUnauthorized, response)
		logResponse(r, http.StatusUnauthorized, response, start)
		return
	}

	var req models.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionRecord]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.PerformTransaction(r.Context(), customerID, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := ledgerErrorStatus(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *LedgerController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	customerID := customerIdentity(r)
	if customerID == "" {
		response := commons.ErrorResponse[models.PageResponse[models.TransactionRecord]]("customer identity is missing")
		writeJSON(w, http.StatusUnauthorized, response)
		logResponse(r, http.StatusUnauthorized, response, start)
		return
	}

	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 10)

	response, err := c.service.ListTransactions(r.Context(), customerID, page, size)
	if err != nil {
		logError(r, err, nil)
		status := ledgerErrorStatus(err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

// customerIdentity reads the authenticated customer resolved by the
// upstream auth layer.
func customerIdentity(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Customer-Id"))
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func ledgerErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOwnershipViolation):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAccountInactive),
		errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSameAccountTransfer),
		errors.Is(err, domain.ErrUnexpectedReceiver),
		errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTransactionAborted):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
