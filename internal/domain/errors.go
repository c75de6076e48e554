package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrDuplicateRecord = errors.New("record already exists")

// Ledger validation failures. All of these are detected before any
// balance mutation and are safe to retry after correcting the input.
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrOwnershipViolation  = errors.New("account does not belong to the customer")
	ErrAccountInactive     = errors.New("account is not active")
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUnexpectedReceiver  = errors.New("receiver account must not be provided")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
)

// ErrTransactionAborted covers concurrency conflicts and storage faults
// at the commit boundary. No partial mutation survives it, so the caller
// may retry unconditionally.
var ErrTransactionAborted = errors.New("transaction aborted")
