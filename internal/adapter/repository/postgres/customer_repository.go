package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/bank-ledger-service/internal/domain"
	"github.com/api-sage/bank-ledger-service/internal/logger"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	logger.Info("customer repository create", logger.Fields{
		"email": customer.Email,
	})

	const query = `
INSERT INTO customers (first_name, last_name, email, password_hash, date_of_birth)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at`

	var id string
	var createdAt, updatedAt time.Time

	if err := r.db.QueryRowContext(
		ctx,
		query,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.PasswordHash,
		customer.DateOfBirth,
	).Scan(&id, &createdAt, &updatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Customer{}, domain.ErrDuplicateRecord
		}
		logger.Error("customer repository create failed", err, logger.Fields{
			"email": customer.Email,
		})
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	customer.ID = id
	customer.CreatedAt = createdAt
	customer.UpdatedAt = updatedAt
	return customer, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	const query = `
SELECT id, first_name, last_name, email, password_hash, date_of_birth, created_at, updated_at
FROM customers
WHERE id = $1`

	return r.getOne(ctx, query, id)
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (domain.Customer, error) {
	const query = `
SELECT id, first_name, last_name, email, password_hash, date_of_birth, created_at, updated_at
FROM customers
WHERE LOWER(email) = LOWER($1)`

	return r.getOne(ctx, query, email)
}

func (r *CustomerRepository) Update(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	logger.Info("customer repository update", logger.Fields{
		"customerId": customer.ID,
	})

	const query = `
UPDATE customers
SET first_name = $2,
    last_name = $3,
    email = $4,
    password_hash = $5,
    date_of_birth = $6,
    updated_at = NOW()
WHERE id = $1
RETURNING created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		customer.ID,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.PasswordHash,
		customer.DateOfBirth,
	).Scan(&customer.CreatedAt, &customer.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrRecordNotFound
		}
		logger.Error("customer repository update failed", err, logger.Fields{
			"customerId": customer.ID,
		})
		return domain.Customer{}, fmt.Errorf("update customer: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) getOne(ctx context.Context, query string, arg any) (domain.Customer, error) {
	var customer domain.Customer
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&customer.ID,
		&customer.FirstName,
		&customer.LastName,
		&customer.Email,
		&customer.PasswordHash,
		&customer.DateOfBirth,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrRecordNotFound
		}
		return domain.Customer{}, fmt.Errorf("get customer: %w", err)
	}

	return customer, nil
}
