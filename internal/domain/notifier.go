package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Notifier delivers customer notifications after a successful commit.
// Delivery is best-effort: errors are logged by the caller, never
// propagated to the customer request.
type Notifier interface {
	NotifyTransaction(ctx context.Context, email string, txType TransactionType, amount decimal.Decimal, newBalance decimal.Decimal, accountNumber string) error
	NotifyAccountCreated(ctx context.Context, email string, fullName string, accountNumber string, balance decimal.Decimal) error
}
