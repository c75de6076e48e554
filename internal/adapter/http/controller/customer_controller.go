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

type CustomerService interface {
	ValidateLogin(ctx context.Context, email, password string) (commons.Response[models.CustomerResponse], error)
	UpdateProfile(ctx context.Context, customerID string, req models.UpdateProfileRequest) (commons.Response[models.CustomerResponse], error)
}

type CustomerController struct {
	service CustomerService
}

func NewCustomerController(service CustomerService) *CustomerController {
	return &CustomerController{service: service}
}

func (c *CustomerController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	login := http.Handler(http.HandlerFunc(c.login))
	profile := http.Handler(http.HandlerFunc(c.updateProfile))
	if authMiddleware != nil {
		login = authMiddleware(login)
		profile = authMiddleware(profile)
	}

	mux.Handle("/login", login)
	mux.Handle("/update-profile", profile)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *CustomerController) login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.CustomerResponse]("method not allowed"))
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CustomerResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, map[string]string{"email": req.Email})

	response, err := c.service.ValidateLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		logError(r, err, nil)
		status := http.StatusUnauthorized
		if errors.Is(err, domain.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *CustomerController) updateProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPut && r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.CustomerResponse]("method not allowed"))
		return
	}

	customerID := customerIdentity(r)
	if customerID == "" {
		response := commons.ErrorResponse[models.CustomerResponse]("customer identity is missing")
		writeJSON(w, http.StatusUnauthorized, response)
		logResponse(r, http.StatusUnauthorized, response, start)
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CustomerResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.UpdateProfile(r.Context(), customerID, req)
	if err != nil {
		logError(r, err, nil)
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
