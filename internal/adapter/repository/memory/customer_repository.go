package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/api-sage/bank-ledger-service/internal/domain"
)

type CustomerRepository struct {
	mu         sync.RWMutex
	customers  map[string]*domain.Customer
	emailIndex map[string]string
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		customers:  make(map[string]*domain.Customer),
		emailIndex: make(map[string]string),
	}
}

func (r *CustomerRepository) Create(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(customer.Email))
	if _, exists := r.emailIndex[email]; exists {
		return domain.Customer{}, domain.ErrDuplicateRecord
	}

	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	stored := customer
	r.customers[customer.ID] = &stored
	r.emailIndex[email] = customer.ID

	return customer, nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, exists := r.customers[id]
	if !exists {
		return domain.Customer{}, domain.ErrRecordNotFound
	}
	return *customer, nil
}

func (r *CustomerRepository) GetByEmail(_ context.Context, email string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.emailIndex[strings.ToLower(strings.TrimSpace(email))]
	if !exists {
		return domain.Customer{}, domain.ErrRecordNotFound
	}
	return *r.customers[id], nil
}

func (r *CustomerRepository) Update(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.customers[customer.ID]
	if !exists {
		return domain.Customer{}, domain.ErrRecordNotFound
	}

	delete(r.emailIndex, strings.ToLower(strings.TrimSpace(existing.Email)))

	customer.CreatedAt = existing.CreatedAt
	customer.UpdatedAt = time.Now()

	stored := customer
	r.customers[customer.ID] = &stored
	r.emailIndex[strings.ToLower(strings.TrimSpace(customer.Email))] = customer.ID

	return customer, nil
}
