package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/api-sage/bank-ledger-service/internal/domain"
)

// Store is a map-backed account ledger used by tests and by the
// STORAGE_DRIVER=memory configuration. Mutation rights are a mutex per
// account number, always acquired in ascending account-number order so
// two opposing transfers cannot deadlock each other. The store-wide
// RWMutex only guards map access and the transaction slice; readers
// therefore never observe a half-applied two-account mutation.
type Store struct {
	mu            sync.RWMutex
	accounts      map[string]*domain.Account
	customerIndex map[string][]string
	accountLocks  map[string]*sync.Mutex
	transactions  []domain.Transaction
	nextTxID      int64
}

func NewStore() *Store {
	return &Store{
		accounts:      make(map[string]*domain.Account),
		customerIndex: make(map[string][]string),
		accountLocks:  make(map[string]*sync.Mutex),
	}
}

func (s *Store) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.AccountNumber]; exists {
		return domain.Account{}, domain.ErrDuplicateRecord
	}

	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	stored := account
	s.accounts[account.AccountNumber] = &stored
	s.customerIndex[account.CustomerID] = append(s.customerIndex[account.CustomerID], account.AccountNumber)
	s.accountLocks[account.AccountNumber] = &sync.Mutex{}

	return account, nil
}

func (s *Store) GetByAccountNumber(_ context.Context, accountNumber string) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, exists := s.accounts[accountNumber]
	if !exists {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	return *account, nil
}

func (s *Store) ListByCustomerID(_ context.Context, customerID string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	numbers := s.customerIndex[customerID]
	accounts := make([]domain.Account, 0, len(numbers))
	for _, number := range numbers {
		if account, exists := s.accounts[number]; exists {
			accounts = append(accounts, *account)
		}
	}
	return accounts, nil
}

func (s *Store) UpdateStatus(_ context.Context, accountNumber string, status domain.AccountStatus) error {
	s.mu.RLock()
	lock, exists := s.accountLocks[accountNumber]
	s.mu.RUnlock()
	if !exists {
		return domain.ErrRecordNotFound
	}

	// Status changes take the account's mutation lock so they cannot
	// interleave with an in-flight AtomicUpdate and be overwritten by
	// its commit.
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.accounts[accountNumber]
	if !exists {
		return domain.ErrRecordNotFound
	}

	account.Status = status
	account.UpdatedAt = time.Now()
	return nil
}

func (s *Store) AtomicUpdate(_ context.Context, accountNumbers []string, apply domain.AtomicApplyFunc) (domain.Transaction, error) {
	ordered := dedupeSorted(accountNumbers)

	locks := make([]*sync.Mutex, 0, len(ordered))
	s.mu.RLock()
	for _, number := range ordered {
		lock, exists := s.accountLocks[number]
		if !exists {
			s.mu.RUnlock()
			return domain.Transaction{}, domain.ErrAccountNotFound
		}
		locks = append(locks, lock)
	}
	s.mu.RUnlock()

	// Ascending account-number order: the total order that prevents
	// circular wait between concurrent multi-account updates.
	for _, lock := range locks {
		lock.Lock()
	}
	defer func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
		}
	}()

	working := make(map[string]*domain.Account, len(ordered))
	s.mu.RLock()
	for _, number := range ordered {
		account, exists := s.accounts[number]
		if !exists {
			s.mu.RUnlock()
			return domain.Transaction{}, domain.ErrAccountNotFound
		}
		copied := *account
		working[number] = &copied
	}
	s.mu.RUnlock()

	record, err := apply(working)
	if err != nil {
		return domain.Transaction{}, err
	}
	if record == nil {
		return domain.Transaction{}, domain.ErrTransactionAborted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTxID++
	record.ID = s.nextTxID
	record.Date = time.Now()

	now := time.Now()
	for number, mutated := range working {
		mutated.UpdatedAt = now
		stored := *mutated
		s.accounts[number] = &stored
	}
	s.transactions = append(s.transactions, *record)

	return *record, nil
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
