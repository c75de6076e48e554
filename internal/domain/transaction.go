package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeTransfer TransactionType = "TRANSFER"
	TransactionTypeCredit   TransactionType = "CREDIT"
	TransactionTypeDebit    TransactionType = "DEBIT"
)

// Transaction is an append-only audit record. ID and Date are assigned
// by the store at commit time, never by the caller.
type Transaction struct {
	ID                    int64
	Date                  time.Time
	Type                  TransactionType
	Amount                decimal.Decimal
	SenderAccountNumber   string
	ReceiverAccountNumber *string
}
