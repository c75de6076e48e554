package domain

import "context"

// TransactionLog is the read side of the append-only transaction store.
// Appends happen only inside AccountStore.AtomicUpdate so that no record
// can exist without its balance mutation having been applied.
type TransactionLog interface {
	ListByCustomer(ctx context.Context, customerID string, page, size int) (Page[Transaction], error)
	ListAll(ctx context.Context, page, size int) (Page[Transaction], error)
}
