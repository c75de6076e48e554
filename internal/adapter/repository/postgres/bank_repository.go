package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/bank-ledger-service/internal/domain"
	"github.com/api-sage/bank-ledger-service/internal/logger"
)

type BankRepository struct {
	db *sql.DB
}

func NewBankRepository(db *sql.DB) *BankRepository {
	return &BankRepository{db: db}
}

func (r *BankRepository) Create(ctx context.Context, bank domain.Bank) (domain.Bank, error) {
	logger.Info("bank repository create", logger.Fields{
		"bankName": bank.BankName,
		"bankCode": bank.BankCode,
	})

	const query = `
INSERT INTO banks (bank_name, bank_code)
VALUES ($1, $2)
RETURNING id, created_at`

	if err := r.db.QueryRowContext(ctx, query, bank.BankName, bank.BankCode).Scan(&bank.ID, &bank.CreatedAt); err != nil {
		logger.Error("bank repository create failed", err, logger.Fields{
			"bankCode": bank.BankCode,
		})
		return domain.Bank{}, fmt.Errorf("create bank: %w", err)
	}

	return bank, nil
}

func (r *BankRepository) GetByID(ctx context.Context, id string) (domain.Bank, error) {
	const query = `
SELECT id, bank_name, bank_code, created_at
FROM banks
WHERE id = $1`

	var bank domain.Bank
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&bank.ID, &bank.BankName, &bank.BankCode, &bank.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Bank{}, domain.ErrRecordNotFound
		}
		return domain.Bank{}, fmt.Errorf("get bank: %w", err)
	}

	return bank, nil
}

func (r *BankRepository) GetAll(ctx context.Context) ([]domain.Bank, error) {
	const query = `
SELECT id, bank_name, bank_code, created_at
FROM banks
ORDER BY bank_name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}
	defer rows.Close()

	var banks []domain.Bank
	for rows.Next() {
		var bank domain.Bank
		if err := rows.Scan(&bank.ID, &bank.BankName, &bank.BankCode, &bank.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bank row: %w", err)
		}
		banks = append(banks, bank)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bank rows: %w", err)
	}

	return banks, nil
}
