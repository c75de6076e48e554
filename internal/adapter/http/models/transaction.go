package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type TransactionRequest struct {
	TransactionType       string          `json:"transactionType"`
	Amount                decimal.Decimal `json:"amount"`
	SenderAccountNumber   string          `json:"senderAccountNumber"`
	ReceiverAccountNumber string          `json:"receiverAccountNumber,omitempty"`
}

func (r TransactionRequest) Validate() error {
	var errs []string

	txType := strings.ToUpper(strings.TrimSpace(r.TransactionType))
	switch txType {
	case "TRANSFER", "CREDIT", "DEBIT":
	default:
		errs = append(errs, "transactionType must be one of TRANSFER, CREDIT, DEBIT")
	}

	if !isTenDigits(r.SenderAccountNumber) {
		errs = append(errs, "senderAccountNumber must be exactly 10 digits")
	}

	if txType == "TRANSFER" {
		if !isTenDigits(r.ReceiverAccountNumber) {
			errs = append(errs, "receiverAccountNumber must be exactly 10 digits")
		}
	} else if strings.TrimSpace(r.ReceiverAccountNumber) != "" {
		errs = append(errs, "receiverAccountNumber must not be provided for "+strings.ToLower(txType)+" transactions")
	}

	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransactionRecord struct {
	TransactionID         int64            `json:"transactionId"`
	TransactionDate       string           `json:"transactionDate"`
	TransactionType       string           `json:"transactionType"`
	Amount                decimal.Decimal  `json:"amount"`
	SenderAccountNumber   string           `json:"senderAccountNumber"`
	ReceiverAccountNumber *string          `json:"receiverAccountNumber,omitempty"`
	NewBalance            *decimal.Decimal `json:"newBalance,omitempty"`
}

type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}

func isTenDigits(value string) bool {
	trimmed := strings.TrimSpace(value)
	return len(trimmed) == 10 && digitsOnly(trimmed)
}

func digitsOnly(value string) bool {
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
