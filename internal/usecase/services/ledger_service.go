package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/bank-ledger-service/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger-service/internal/commons"
	"github.com/api-sage/bank-ledger-service/internal/domain"
	"github.com/api-sage/bank-ledger-service/internal/logger"
	"github.com/api-sage/bank-ledger-service/internal/metrics"
)

// LedgerService is the transaction processor. It validates a requested
// operation against the caller's identity and the account state, then
// commits the balance mutation and the audit record as one atomic unit
// through AccountStore.AtomicUpdate. Validation runs twice: once
// up-front for fail-fast rejection, and again inside the commit with
// the accounts locked, so a balance or status that changed between the
// two reads can never slip through.
type LedgerService struct {
	accountStore   domain.AccountStore
	transactionLog domain.TransactionLog
	customerRepo   domain.CustomerRepository
	notifier       domain.Notifier
	collector      *metrics.Collector
}

func NewLedgerService(
	accountStore domain.AccountStore,
	transactionLog domain.TransactionLog,
	customerRepo domain.CustomerRepository,
	notifier domain.Notifier,
	collector *metrics.Collector,
) *LedgerService {
	return &LedgerService{
		accountStore:   accountStore,
		transactionLog: transactionLog,
		customerRepo:   customerRepo,
		notifier:       notifier,
		collector:      collector,
	}
}

func (s *LedgerService) PerformTransaction(ctx context.Context, customerID string, req models.TransactionRequest) (commons.Response[models.TransactionRecord], error) {
	logger.Info("ledger service perform transaction request", logger.Fields{
		"customerId": customerID,
		"payload":    logger.SanitizePayload(req),
	})

	start := time.Now()
	txType := domain.TransactionType(strings.ToUpper(strings.TrimSpace(req.TransactionType)))
	amount := req.Amount
	receiverNumber := strings.TrimSpace(req.ReceiverAccountNumber)

	if amount.LessThanOrEqual(decimal.Zero) {
		s.record(txType, "rejected", start)
		return commons.ErrorResponse[models.TransactionRecord]("validation failed", domain.ErrInvalidAmount.Error()), domain.ErrInvalidAmount
	}

	if (txType == domain.TransactionTypeCredit || txType == domain.TransactionTypeDebit) && receiverNumber != "" {
		s.record(txType, "rejected", start)
		return commons.ErrorResponse[models.TransactionRecord]("Receiver account must not be provided"), domain.ErrUnexpectedReceiver
	}

	if err := req.Validate(); err != nil {
		s.record(txType, "rejected", start)
		return commons.ErrorResponse[models.TransactionRecord]("validation failed", err.Error()), err
	}

	customer, err := s.customerRepo.GetByID(ctx, strings.TrimSpace(customerID))
	if err != nil {
		s.record(txType, "rejected", start)
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionRecord]("Customer not found"), err
		}
		return commons.ErrorResponse[models.TransactionRecord]("failed to process transaction", "Unable to process transaction right now"), err
	}

	senderNumber := strings.TrimSpace(req.SenderAccountNumber)

	sender, err := s.accountStore.GetByAccountNumber(ctx, senderNumber)
	if err != nil {
		s.record(txType, "rejected", start)
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionRecord]("Account not found"), domain.ErrAccountNotFound
		}
		return commons.ErrorResponse[models.TransactionRecord]("failed to process transaction", "Unable to process transaction right now"), err
	}

	if sender.CustomerID != customer.ID {
		logger.Info("ledger service ownership check failed", logger.Fields{
			"customerId":    customer.ID,
			"accountNumber": senderNumber,
		})
		s.record(txType, "rejected", start)
		return commons.ErrorResponse[models.TransactionRecord]("Account does not belong to the customer"), domain.ErrOwnershipViolation
	}

	if sender.Status != domain.AccountStatusActive {
		s.record(txType, "rejected", start)
		return commons.ErrorResponse[models.TransactionRecord]("Account is not active"), domain.ErrAccountInactive
	}

	accountNumbers := []string{senderNumber}

	switch txType {
	case domain.TransactionTypeTransfer:
		receiver, err := s.accountStore.GetByAccountNumber(ctx, receiverNumber)
		if err != nil {
			s.record(txType, "rejected", start)
			if errors.Is(err, domain.ErrRecordNotFound) {
				return commons.ErrorResponse[models.TransactionRecord]("Receiver account not found"), domain.ErrAccountNotFound
			}
			return commons.ErrorResponse[models.TransactionRecord]("failed to process transaction", "Unable to process transaction right now"), err
		}
		if receiver.AccountNumber == sender.AccountNumber {
			s.record(txType, "rejected", start)
			return commons.ErrorResponse[models.TransactionRecord]("Cannot transfer to the same account"), domain.ErrSameAccountTransfer
		}
		if sender.Balance.LessThan(amount) {
			s.record(txType, "rejected", start)
			return commons.ErrorResponse[models.TransactionRecord]("Insufficient balance"), domain.ErrInsufficientBalance
		}
		accountNumbers = append(accountNumbers, receiverNumber)

	case domain.TransactionTypeDebit:
		if sender.Balance.LessThan(amount) {
			s.record(txType, "rejected", start)
			return commons.ErrorResponse[models.TransactionRecord]("Insufficient balance"), domain.ErrInsufficientBalance
		}
	}

	var senderBalanceAfter decimal.Decimal

	record, err := s.accountStore.AtomicUpdate(ctx, accountNumbers, func(accounts map[string]*domain.Account) (*domain.Transaction, error) {
		lockedSender, ok := accounts[senderNumber]
		if !ok {
			return nil, domain.ErrAccountNotFound
		}
		if lockedSender.Status != domain.AccountStatusActive {
			return nil, domain.ErrAccountInactive
		}

		tran := domain.Transaction{
			Type:                txType,
			Amount:              amount,
			SenderAccountNumber: senderNumber,
		}

		switch txType {
		case domain.TransactionTypeTransfer:
			lockedReceiver, ok := accounts[receiverNumber]
			if !ok {
				return nil, domain.ErrAccountNotFound
			}
			if lockedReceiver.Status != domain.AccountStatusActive {
				return nil, domain.ErrAccountInactive
			}
			if lockedSender.Balance.LessThan(amount) {
				return nil, domain.ErrInsufficientBalance
			}
			lockedSender.Balance = lockedSender.Balance.Sub(amount)
			lockedReceiver.Balance = lockedReceiver.Balance.Add(amount)
			receiverCopy := receiverNumber
			tran.ReceiverAccountNumber = &receiverCopy

		case domain.TransactionTypeCredit:
			lockedSender.Balance = lockedSender.Balance.Add(amount)

		case domain.TransactionTypeDebit:
			if lockedSender.Balance.LessThan(amount) {
				return nil, domain.ErrInsufficientBalance
			}
			lockedSender.Balance = lockedSender.Balance.Sub(amount)
		}

		senderBalanceAfter = lockedSender.Balance
		return &tran, nil
	})
	if err != nil {
		response, classified := s.classifyCommitError(err)
		s.record(txType, classifiedOutcome(classified), start)
		return response, classified
	}

	s.record(txType, "success", start)

	logger.Info("ledger service transaction committed", logger.Fields{
		"transactionId": record.ID,
		"type":          record.Type,
		"amount":        record.Amount.StringFixed(2),
		"accountNumber": senderNumber,
	})

	// Post-commit notification is best-effort and never fails the
	// request.
	if notifyErr := s.notifier.NotifyTransaction(ctx, customer.Email, record.Type, record.Amount, senderBalanceAfter, senderNumber); notifyErr != nil {
		logger.Error("ledger service notification failed", notifyErr, logger.Fields{
			"transactionId": record.ID,
		})
		if s.collector != nil {
			s.collector.RecordNotificationFailure()
		}
	}

	response := mapTransactionToRecord(record)
	response.NewBalance = &senderBalanceAfter

	return commons.SuccessResponse("Transaction successful", response), nil
}

func (s *LedgerService) ListTransactions(ctx context.Context, customerID string, page, size int) (commons.Response[models.PageResponse[models.TransactionRecord]], error) {
	logger.Info("ledger service list transactions", logger.Fields{
		"customerId": customerID,
		"page":       page,
		"size":       size,
	})

	customer, err := s.customerRepo.GetByID(ctx, strings.TrimSpace(customerID))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.PageResponse[models.TransactionRecord]]("Customer not found"), err
		}
		return commons.ErrorResponse[models.PageResponse[models.TransactionRecord]]("failed to list transactions", "Unable to fetch transactions right now"), err
	}

	result, err := s.transactionLog.ListByCustomer(ctx, customer.ID, page, size)
	if err != nil {
		logger.Error("ledger service list transactions failed", err, logger.Fields{
			"customerId": customer.ID,
		})
		return commons.ErrorResponse[models.PageResponse[models.TransactionRecord]]("failed to list transactions", "Unable to fetch transactions right now"), err
	}

	return commons.SuccessResponse("Transactions retrieved", mapTransactionPage(result)), nil
}

// classifyCommitError separates validation rejects surfaced under lock
// from mechanical commit failures; anything unrecognized is reported as
// an aborted transaction with the cause kept in the error chain.
func (s *LedgerService) classifyCommitError(err error) (commons.Response[models.TransactionRecord], error) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return commons.ErrorResponse[models.TransactionRecord]("Account not found"), err
	case errors.Is(err, domain.ErrAccountInactive):
		return commons.ErrorResponse[models.TransactionRecord]("Account is not active"), err
	case errors.Is(err, domain.ErrInsufficientBalance):
		return commons.ErrorResponse[models.TransactionRecord]("Insufficient balance"), err
	case errors.Is(err, domain.ErrTransactionAborted):
		return commons.ErrorResponse[models.TransactionRecord]("Transaction aborted", "The transaction could not be committed; it is safe to retry"), err
	default:
		logger.Error("ledger service unexpected commit failure", err, nil)
		return commons.ErrorResponse[models.TransactionRecord]("Transaction aborted", "The transaction could not be committed; it is safe to retry"), domain.ErrTransactionAborted
	}
}

func classifiedOutcome(err error) string {
	if errors.Is(err, domain.ErrTransactionAborted) {
		return "aborted"
	}
	return "rejected"
}

// record clamps the type label to the known set so user-supplied
// strings cannot grow metric cardinality without bound.
func (s *LedgerService) record(txType domain.TransactionType, outcome string, start time.Time) {
	if s.collector == nil {
		return
	}

	label := string(txType)
	switch txType {
	case domain.TransactionTypeTransfer, domain.TransactionTypeCredit, domain.TransactionTypeDebit:
	default:
		label = "INVALID"
	}

	s.collector.RecordTransaction(label, outcome, time.Since(start))
}

func mapTransactionToRecord(tran domain.Transaction) models.TransactionRecord {
	return models.TransactionRecord{
		TransactionID:         tran.ID,
		TransactionDate:       tran.Date.UTC().Format(time.RFC3339),
		TransactionType:       string(tran.Type),
		Amount:                tran.Amount,
		SenderAccountNumber:   tran.SenderAccountNumber,
		ReceiverAccountNumber: tran.ReceiverAccountNumber,
	}
}

func mapTransactionPage(page domain.Page[domain.Transaction]) models.PageResponse[models.TransactionRecord] {
	content := make([]models.TransactionRecord, 0, len(page.Content))
	for _, tran := range page.Content {
		content = append(content, mapTransactionToRecord(tran))
	}

	return models.PageResponse[models.TransactionRecord]{
		Content:       content,
		PageNumber:    page.PageNumber,
		PageSize:      page.PageSize,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		Last:          page.Last,
	}
}
