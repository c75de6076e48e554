package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/api-sage/bank-ledger-service/internal/domain"
	"github.com/api-sage/bank-ledger-service/internal/logger"
)

type TransactionLog struct {
	db *sql.DB
}

func NewTransactionLog(db *sql.DB) *TransactionLog {
	return &TransactionLog{db: db}
}

func (l *TransactionLog) ListByCustomer(ctx context.Context, customerID string, page, size int) (domain.Page[domain.Transaction], error) {
	logger.Info("transaction log list by customer", logger.Fields{
		"customerId": customerID,
		"page":       page,
		"size":       size,
	})

	page, size = normalizePaging(page, size)

	const countQuery = `
SELECT COUNT(1)
FROM transactions t
JOIN accounts a ON a.account_number = t.sender_account_number
WHERE a.customer_id = $1`

	var total int64
	if err := l.db.QueryRowContext(ctx, countQuery, customerID).Scan(&total); err != nil {
		return domain.Page[domain.Transaction]{}, fmt.Errorf("count customer transactions: %w", err)
	}

	const listQuery = `
SELECT t.transaction_id, t.transaction_date, t.transaction_type, t.transaction_amount,
       t.sender_account_number, t.receiver_account_number
FROM transactions t
JOIN accounts a ON a.account_number = t.sender_account_number
WHERE a.customer_id = $1
ORDER BY t.transaction_id DESC
LIMIT $2 OFFSET $3`

	content, err := l.queryTransactions(ctx, listQuery, customerID, size, page*size)
	if err != nil {
		return domain.Page[domain.Transaction]{}, err
	}

	return domain.NewPage(content, page, size, total), nil
}

func (l *TransactionLog) ListAll(ctx context.Context, page, size int) (domain.Page[domain.Transaction], error) {
	logger.Info("transaction log list all", logger.Fields{
		"page": page,
		"size": size,
	})

	page, size = normalizePaging(page, size)

	var total int64
	if err := l.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM transactions`).Scan(&total); err != nil {
		return domain.Page[domain.Transaction]{}, fmt.Errorf("count transactions: %w", err)
	}

	const listQuery = `
SELECT transaction_id, transaction_date, transaction_type, transaction_amount,
       sender_account_number, receiver_account_number
FROM transactions
ORDER BY transaction_id DESC
LIMIT $1 OFFSET $2`

	content, err := l.queryTransactions(ctx, listQuery, size, page*size)
	if err != nil {
		return domain.Page[domain.Transaction]{}, err
	}

	return domain.NewPage(content, page, size, total), nil
}

func (l *TransactionLog) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var records []domain.Transaction
	for rows.Next() {
		var record domain.Transaction
		var amount string
		var receiver sql.NullString

		if err := rows.Scan(
			&record.ID,
			&record.Date,
			&record.Type,
			&amount,
			&record.SenderAccountNumber,
			&receiver,
		); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}

		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse transaction amount %q: %w", amount, err)
		}
		record.Amount = parsed

		if receiver.Valid {
			value := receiver.String
			record.ReceiverAccountNumber = &value
		}

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}

	return records, nil
}

func normalizePaging(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	return page, size
}
