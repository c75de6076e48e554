package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/api-sage/bank-ledger-service/internal/domain"
	"github.com/api-sage/bank-ledger-service/internal/logger"
)

// maxCommitAttempts bounds the retry loop on serialization conflicts so
// a contended account surfaces ErrTransactionAborted instead of
// livelocking.
const maxCommitAttempts = 3

type AccountStore struct {
	db *sql.DB
}

func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account store create", logger.Fields{
		"customerId":    account.CustomerID,
		"accountNumber": account.AccountNumber,
	})

	const query = `
INSERT INTO accounts (customer_id, bank_id, account_number, balance, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at`

	var id string
	var createdAt, updatedAt time.Time

	if err := s.db.QueryRowContext(
		ctx,
		query,
		account.CustomerID,
		account.BankID,
		account.AccountNumber,
		account.Balance.StringFixed(2),
		account.Status,
	).Scan(&id, &createdAt, &updatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Account{}, domain.ErrDuplicateRecord
		}
		logger.Error("account store create failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.ID = id
	account.CreatedAt = createdAt
	account.UpdatedAt = updatedAt
	return account, nil
}

func (s *AccountStore) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	const query = `
SELECT id, customer_id, bank_id, account_number, balance, status, created_at, updated_at
FROM accounts
WHERE account_number = $1`

	account, err := scanAccount(s.db.QueryRowContext(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		logger.Error("account store get failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, fmt.Errorf("get account by account number: %w", err)
	}

	return account, nil
}

func (s *AccountStore) ListByCustomerID(ctx context.Context, customerID string) ([]domain.Account, error) {
	const query = `
SELECT id, customer_id, bank_id, account_number, balance, status, created_at, updated_at
FROM accounts
WHERE customer_id = $1
ORDER BY account_number`

	rows, err := s.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list accounts by customer: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}

func (s *AccountStore) UpdateStatus(ctx context.Context, accountNumber string, status domain.AccountStatus) error {
	logger.Info("account store update status", logger.Fields{
		"accountNumber": accountNumber,
		"status":        status,
	})

	const query = `
UPDATE accounts
SET status = $2,
    updated_at = NOW()
WHERE account_number = $1`

	result, err := s.db.ExecContext(ctx, query, accountNumber, status)
	if err != nil {
		return fmt.Errorf("update account status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account status rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// AtomicUpdate locks the named account rows in ascending account-number
// order, runs the mutator, and commits the new balances together with
// the transaction record in one database transaction. The transaction
// row only exists if the balance updates committed with it.
func (s *AccountStore) AtomicUpdate(ctx context.Context, accountNumbers []string, apply domain.AtomicApplyFunc) (domain.Transaction, error) {
	ordered := dedupeSorted(accountNumbers)

	var lastErr error
	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		record, err := s.runAtomicUpdate(ctx, ordered, apply)
		if err == nil {
			return record, nil
		}
		if !isRetryableConflict(err) {
			return domain.Transaction{}, err
		}

		lastErr = err
		logger.Info("account store atomic update conflict, retrying", logger.Fields{
			"accountNumbers": ordered,
			"attempt":        attempt,
		})
	}

	logger.Error("account store atomic update aborted after retries", lastErr, logger.Fields{
		"accountNumbers": ordered,
	})
	return domain.Transaction{}, fmt.Errorf("atomic update: %w", domain.ErrTransactionAborted)
}

func (s *AccountStore) runAtomicUpdate(ctx context.Context, ordered []string, apply domain.AtomicApplyFunc) (rec domain.Transaction, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("begin ledger transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const lockQuery = `
SELECT id, customer_id, bank_id, account_number, balance, status, created_at, updated_at
FROM accounts
WHERE account_number = $1
FOR UPDATE`

	working := make(map[string]*domain.Account, len(ordered))
	for _, number := range ordered {
		account, scanErr := scanAccount(tx.QueryRowContext(ctx, lockQuery, number))
		if scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				err = domain.ErrAccountNotFound
				return domain.Transaction{}, err
			}
			err = fmt.Errorf("lock account %s: %w", number, scanErr)
			return domain.Transaction{}, err
		}
		copied := account
		working[number] = &copied
	}

	record, err := apply(working)
	if err != nil {
		return domain.Transaction{}, err
	}
	if record == nil {
		err = domain.ErrTransactionAborted
		return domain.Transaction{}, err
	}

	const updateQuery = `
UPDATE accounts
SET balance = $2::numeric,
    updated_at = NOW()
WHERE account_number = $1`

	for _, number := range ordered {
		if _, err = tx.ExecContext(ctx, updateQuery, number, working[number].Balance.StringFixed(2)); err != nil {
			err = fmt.Errorf("update balance for account %s: %w", number, err)
			return domain.Transaction{}, err
		}
	}

	const insertQuery = `
INSERT INTO transactions (transaction_type, transaction_amount, sender_account_number, receiver_account_number)
VALUES ($1, $2, $3, $4)
RETURNING transaction_id, transaction_date`

	if err = tx.QueryRowContext(
		ctx,
		insertQuery,
		record.Type,
		record.Amount.StringFixed(2),
		record.SenderAccountNumber,
		record.ReceiverAccountNumber,
	).Scan(&record.ID, &record.Date); err != nil {
		err = fmt.Errorf("append transaction record: %w", err)
		return domain.Transaction{}, err
	}

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("commit ledger transaction: %w", err)
		return domain.Transaction{}, err
	}

	return *record, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var account domain.Account
	var balance string

	if err := row.Scan(
		&account.ID,
		&account.CustomerID,
		&account.BankID,
		&account.AccountNumber,
		&balance,
		&account.Status,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return domain.Account{}, err
	}

	parsed, err := decimal.NewFromString(balance)
	if err != nil {
		return domain.Account{}, fmt.Errorf("parse balance %q: %w", balance, err)
	}
	account.Balance = parsed

	return account, nil
}

func dedupeSorted(accountNumbers []string) []string {
	ordered := make([]string, 0, len(accountNumbers))
	seen := make(map[string]struct{}, len(accountNumbers))
	for _, number := range accountNumbers {
		if _, dup := seen[number]; dup {
			continue
		}
		seen[number] = struct{}{}
		ordered = append(ordered, number)
	}
	sort.Strings(ordered)
	return ordered
}

// isRetryableConflict reports whether the error is a serialization
// failure (40001) or deadlock (40P01) worth retrying.
func isRetryableConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "40001" || string(pqErr.Code) == "40P01"
	}
	return false
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
