package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/api-sage/bank-ledger-service/internal/domain"
)

type BankRepository struct {
	mu    sync.RWMutex
	banks map[string]*domain.Bank
	order []string
}

func NewBankRepository() *BankRepository {
	return &BankRepository{banks: make(map[string]*domain.Bank)}
}

func (r *BankRepository) Create(_ context.Context, bank domain.Bank) (domain.Bank, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if bank.ID == "" {
		bank.ID = uuid.NewString()
	}
	bank.CreatedAt = time.Now()

	stored := bank
	r.banks[bank.ID] = &stored
	r.order = append(r.order, bank.ID)

	return bank, nil
}

func (r *BankRepository) GetByID(_ context.Context, id string) (domain.Bank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bank, exists := r.banks[id]
	if !exists {
		return domain.Bank{}, domain.ErrRecordNotFound
	}
	return *bank, nil
}

func (r *BankRepository) GetAll(_ context.Context) ([]domain.Bank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	banks := make([]domain.Bank, 0, len(r.order))
	for _, id := range r.order {
		banks = append(banks, *r.banks[id])
	}
	return banks, nil
}
