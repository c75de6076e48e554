package domain

import "context"

// AtomicApplyFunc receives the loaded accounts keyed by account number,
// mutates their balances, and returns the transaction record to append.
// Returning an error or a nil record aborts the update with no mutation
// visible.
type AtomicApplyFunc func(accounts map[string]*Account) (*Transaction, error)

type AccountStore interface {
	Create(ctx context.Context, account Account) (Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (Account, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]Account, error)
	UpdateStatus(ctx context.Context, accountNumber string, status AccountStatus) error

	// AtomicUpdate commits the mutated balances and the returned
	// transaction record as a single unit. At most one in-flight
	// mutation per account number; mutation rights over the named
	// accounts are acquired in ascending account-number order.
	// Conflicts and storage faults surface as ErrTransactionAborted.
	AtomicUpdate(ctx context.Context, accountNumbers []string, apply AtomicApplyFunc) (Transaction, error)
}
