package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/api-sage/bank-ledger-service/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger-service/internal/commons"
	"github.com/api-sage/bank-ledger-service/internal/domain"
	"github.com/api-sage/bank-ledger-service/internal/logger"
)

// AdminService owns the administrative lifecycle operations: customer
// onboarding, account opening, soft deactivation, and the bank
// registry. Accounts are opened with balance zero and status ACTIVE,
// and are never deleted, only deactivated.
type AdminService struct {
	accountStore   domain.AccountStore
	transactionLog domain.TransactionLog
	customerRepo   domain.CustomerRepository
	bankRepo       domain.BankRepository
	notifier       domain.Notifier
}

func NewAdminService(
	accountStore domain.AccountStore,
	transactionLog domain.TransactionLog,
	customerRepo domain.CustomerRepository,
	bankRepo domain.BankRepository,
	notifier domain.Notifier,
) *AdminService {
	return &AdminService{
		accountStore:   accountStore,
		transactionLog: transactionLog,
		customerRepo:   customerRepo,
		bankRepo:       bankRepo,
		notifier:       notifier,
	}
}

func (s *AdminService) AddCustomer(ctx context.Context, req models.CreateCustomerRequest) (commons.Response[models.CustomerResponse], error) {
	logger.Info("admin service add customer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.CustomerResponse]("validation failed", err.Error()), err
	}

	dob, err := time.Parse("2006-01-02", strings.TrimSpace(req.DateOfBirth))
	if err != nil {
		return commons.ErrorResponse[models.CustomerResponse]("validation failed", "dateOfBirth must be in YYYY-MM-DD format"), err
	}

	// Initial credential: "<firstname>@<day-of-birth>", rotated by the
	// customer through the profile endpoint.
	initialPassword := strings.ToLower(strings.TrimSpace(req.FirstName)) + "@" + dob.Format("02")
	hashed, err := bcrypt.GenerateFromPassword([]byte(initialPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("admin service hash initial password failed", err, nil)
		return commons.ErrorResponse[models.CustomerResponse]("failed to add customer", "Unable to add customer right now"), err
	}

	customer := domain.Customer{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hashed),
		DateOfBirth:  dob,
	}

	created, err := s.customerRepo.Create(ctx, customer)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateRecord) {
			return commons.ErrorResponse[models.CustomerResponse]("Customer with this email already exists"), err
		}
		logger.Error("admin service add customer failed", err, logger.Fields{
			"email": customer.Email,
		})
		return commons.ErrorResponse[models.CustomerResponse]("failed to add customer", "Unable to add customer right now"), err
	}

	return commons.SuccessResponse("Customer added successfully", mapCustomerToResponse(created)), nil
}

func (s *AdminService) AddAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("admin service add account request", logger.Fields{
		"customerId": req.CustomerID,
		"bankId":     req.BankID,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	customer, err := s.customerRepo.GetByID(ctx, strings.TrimSpace(req.CustomerID))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Customer not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to add account", "Unable to add account right now"), err
	}

	bank, err := s.bankRepo.GetByID(ctx, strings.TrimSpace(req.BankID))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Bank not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to add account", "Unable to add account right now"), err
	}

	var created domain.Account
	for attempt := 0; attempt < 5; attempt++ {
		number, genErr := generateAccountNumber()
		if genErr != nil {
			return commons.ErrorResponse[models.AccountResponse]("failed to add account", "Unable to add account right now"), genErr
		}

		created, err = s.accountStore.Create(ctx, domain.Account{
			CustomerID:    customer.ID,
			BankID:        bank.ID,
			AccountNumber: number,
			Balance:       decimal.Zero,
			Status:        domain.AccountStatusActive,
		})
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicateRecord) {
			logger.Error("admin service add account failed", err, logger.Fields{
				"customerId": customer.ID,
			})
			return commons.ErrorResponse[models.AccountResponse]("failed to add account", "Unable to add account right now"), err
		}
	}
	if err != nil {
		return commons.ErrorResponse[models.AccountResponse]("failed to add account", "Unable to add account right now"), err
	}

	logger.Info("admin service account created", logger.Fields{
		"accountNumber": created.AccountNumber,
		"customerId":    customer.ID,
	})

	fullName := customer.FirstName + " " + customer.LastName
	if notifyErr := s.notifier.NotifyAccountCreated(ctx, customer.Email, fullName, created.AccountNumber, created.Balance); notifyErr != nil {
		logger.Error("admin service account creation notification failed", notifyErr, logger.Fields{
			"accountNumber": created.AccountNumber,
		})
	}

	return commons.SuccessResponse("Account added successfully", models.AccountResponse{
		AccountNumber: created.AccountNumber,
		Balance:       created.Balance,
		Status:        string(created.Status),
		CustomerID:    created.CustomerID,
		BankID:        created.BankID,
	}), nil
}

// DeactivateCustomer soft-deletes: every account of the customer is set
// INACTIVE. Account records and their transactions are kept.
func (s *AdminService) DeactivateCustomer(ctx context.Context, customerID string) (commons.Response[string], error) {
	logger.Info("admin service deactivate customer request", logger.Fields{
		"customerId": customerID,
	})

	customer, err := s.customerRepo.GetByID(ctx, strings.TrimSpace(customerID))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[string]("Customer not found"), err
		}
		return commons.ErrorResponse[string]("failed to deactivate customer", "Unable to deactivate customer right now"), err
	}

	accounts, err := s.accountStore.ListByCustomerID(ctx, customer.ID)
	if err != nil {
		return commons.ErrorResponse[string]("failed to deactivate customer", "Unable to deactivate customer right now"), err
	}
	if len(accounts) == 0 {
		err := fmt.Errorf("no accounts found for customer %s", customer.ID)
		return commons.ErrorResponse[string]("No accounts found for the customer"), err
	}

	for _, account := range accounts {
		if err := s.accountStore.UpdateStatus(ctx, account.AccountNumber, domain.AccountStatusInactive); err != nil {
			logger.Error("admin service deactivate account failed", err, logger.Fields{
				"accountNumber": account.AccountNumber,
			})
			return commons.ErrorResponse[string]("failed to deactivate customer", "Unable to deactivate customer right now"), err
		}
		logger.Info("admin service account deactivated", logger.Fields{
			"accountNumber": account.AccountNumber,
		})
	}

	return commons.SuccessResponse("Customer deactivated successfully", customer.ID), nil
}

func (s *AdminService) AddBank(ctx context.Context, req models.AddBankRequest) (commons.Response[models.BankResponse], error) {
	logger.Info("admin service add bank request", logger.Fields{
		"bankName": req.BankName,
		"bankCode": req.BankCode,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.BankResponse]("validation failed", err.Error()), err
	}

	created, err := s.bankRepo.Create(ctx, domain.Bank{
		BankName: strings.TrimSpace(req.BankName),
		BankCode: strings.TrimSpace(req.BankCode),
	})
	if err != nil {
		logger.Error("admin service add bank failed", err, logger.Fields{
			"bankCode": req.BankCode,
		})
		return commons.ErrorResponse[models.BankResponse]("failed to add bank", "Unable to add bank right now"), err
	}

	return commons.SuccessResponse("Bank added successfully", models.BankResponse{
		ID:       created.ID,
		BankName: created.BankName,
		BankCode: created.BankCode,
	}), nil
}

func (s *AdminService) ListBanks(ctx context.Context) (commons.Response[[]models.BankResponse], error) {
	banks, err := s.bankRepo.GetAll(ctx)
	if err != nil {
		return commons.ErrorResponse[[]models.BankResponse]("failed to list banks", "Unable to list banks right now"), err
	}

	responses := make([]models.BankResponse, 0, len(banks))
	for _, bank := range banks {
		responses = append(responses, models.BankResponse{
			ID:       bank.ID,
			BankName: bank.BankName,
			BankCode: bank.BankCode,
		})
	}

	return commons.SuccessResponse("Banks retrieved", responses), nil
}

func (s *AdminService) ViewAllTransactions(ctx context.Context, page, size int) (commons.Response[models.PageResponse[models.TransactionRecord]], error) {
	logger.Info("admin service view all transactions", logger.Fields{
		"page": page,
		"size": size,
	})

	result, err := s.transactionLog.ListAll(ctx, page, size)
	if err != nil {
		logger.Error("admin service view all transactions failed", err, nil)
		return commons.ErrorResponse[models.PageResponse[models.TransactionRecord]]("failed to list transactions", "Unable to fetch transactions right now"), err
	}

	return commons.SuccessResponse("Transactions retrieved", mapTransactionPage(result)), nil
}

// generateAccountNumber returns a random 10-digit account number.
func generateAccountNumber() (string, error) {
	max := big.NewInt(9000000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate account number: %w", err)
	}

	return fmt.Sprintf("%010d", n.Int64()+1000000000), nil
}
