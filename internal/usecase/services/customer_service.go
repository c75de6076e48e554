package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/api-sage/bank-ledger-service/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger-service/internal/commons"
	"github.com/api-sage/bank-ledger-service/internal/domain"
	"github.com/api-sage/bank-ledger-service/internal/logger"
)

type CustomerService struct {
	customerRepo domain.CustomerRepository
}

func NewCustomerService(customerRepo domain.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// ValidateLogin resolves a customer identity from login credentials.
// The API layer calls this before any ledger operation.
func (s *CustomerService) ValidateLogin(ctx context.Context, email, password string) (commons.Response[models.CustomerResponse], error) {
	logger.Info("customer service validate login", logger.Fields{
		"email": email,
	})

	customer, err := s.customerRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CustomerResponse]("Customer not found"), err
		}
		return commons.ErrorResponse[models.CustomerResponse]("failed to validate login", "Unable to validate login right now"), err
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)) != nil {
		logger.Info("customer service invalid password", logger.Fields{
			"email": email,
		})
		err := fmt.Errorf("invalid password")
		return commons.ErrorResponse[models.CustomerResponse]("Invalid credentials", err.Error()), err
	}

	return commons.SuccessResponse("Login validated", mapCustomerToResponse(customer)), nil
}

// UpdateProfile updates profile fields and, when a new password is
// supplied, rotates the credential after verifying the current one.
// The whole update persists as a single unit, separate from any ledger
// commit.
func (s *CustomerService) UpdateProfile(ctx context.Context, customerID string, req models.UpdateProfileRequest) (commons.Response[models.CustomerResponse], error) {
	logger.Info("customer service update profile request", logger.Fields{
		"customerId": customerID,
		"payload":    logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.CustomerResponse]("validation failed", err.Error()), err
	}

	customer, err := s.customerRepo.GetByID(ctx, strings.TrimSpace(customerID))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CustomerResponse]("Customer not found"), err
		}
		return commons.ErrorResponse[models.CustomerResponse]("failed to update profile", "Unable to update profile right now"), err
	}

	if newPassword := strings.TrimSpace(req.NewPassword); newPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(strings.TrimSpace(req.CurrentPassword))) != nil {
			err := fmt.Errorf("current password is incorrect")
			return commons.ErrorResponse[models.CustomerResponse]("Current password is incorrect", err.Error()), err
		}

		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if hashErr != nil {
			logger.Error("customer service hash password failed", hashErr, nil)
			return commons.ErrorResponse[models.CustomerResponse]("failed to update profile", "Unable to update profile right now"), hashErr
		}
		customer.PasswordHash = string(hashed)
	}

	customer.FirstName = strings.TrimSpace(req.FirstName)
	customer.LastName = strings.TrimSpace(req.LastName)
	customer.Email = strings.TrimSpace(req.Email)

	if dobRaw := strings.TrimSpace(req.DateOfBirth); dobRaw != "" {
		dob, parseErr := time.Parse("2006-01-02", dobRaw)
		if parseErr != nil {
			return commons.ErrorResponse[models.CustomerResponse]("validation failed", "dateOfBirth must be in YYYY-MM-DD format"), parseErr
		}
		customer.DateOfBirth = dob
	}

	updated, err := s.customerRepo.Update(ctx, customer)
	if err != nil {
		logger.Error("customer service update profile failed", err, logger.Fields{
			"customerId": customer.ID,
		})
		return commons.ErrorResponse[models.CustomerResponse]("failed to update profile", "Unable to update profile right now"), err
	}

	logger.Info("customer service profile updated", logger.Fields{
		"customerId": updated.ID,
	})

	return commons.SuccessResponse("Profile updated successfully", mapCustomerToResponse(updated)), nil
}

func mapCustomerToResponse(customer domain.Customer) models.CustomerResponse {
	return models.CustomerResponse{
		ID:          customer.ID,
		FirstName:   customer.FirstName,
		LastName:    customer.LastName,
		Email:       customer.Email,
		DateOfBirth: customer.DateOfBirth.Format("2006-01-02"),
	}
}
