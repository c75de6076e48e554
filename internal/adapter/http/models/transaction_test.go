package models

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransactionRequestValidateTransfer(t *testing.T) {
	req := TransactionRequest{
		TransactionType:       "TRANSFER",
		Amount:                decimal.NewFromInt(10),
		SenderAccountNumber:   "1000000001",
		ReceiverAccountNumber: "1000000002",
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid transfer request, got %v", err)
	}
}

func TestTransactionRequestValidateRejectsUnknownType(t *testing.T) {
	req := TransactionRequest{
		TransactionType:     "WIRE",
		Amount:              decimal.NewFromInt(10),
		SenderAccountNumber: "1000000001",
	}
	err := req.Validate()
	if err == nil {
		t.Fatal("expected error for unknown transaction type")
	}
	if !strings.Contains(err.Error(), "transactionType") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTransactionRequestValidateRejectsBadAccountNumber(t *testing.T) {
	cases := []string{"", "12345", "12345678901", "10000000ab"}
	for _, number := range cases {
		req := TransactionRequest{
			TransactionType:     "CREDIT",
			Amount:              decimal.NewFromInt(10),
			SenderAccountNumber: number,
		}
		if err := req.Validate(); err == nil {
			t.Fatalf("expected error for sender account %q", number)
		}
	}
}

func TestTransactionRequestValidateTransferNeedsReceiver(t *testing.T) {
	req := TransactionRequest{
		TransactionType:     "TRANSFER",
		Amount:              decimal.NewFromInt(10),
		SenderAccountNumber: "1000000001",
	}
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for transfer without receiver")
	}
}

func TestTransactionRequestValidateDebitRejectsReceiver(t *testing.T) {
	req := TransactionRequest{
		TransactionType:       "DEBIT",
		Amount:                decimal.NewFromInt(10),
		SenderAccountNumber:   "1000000001",
		ReceiverAccountNumber: "1000000002",
	}
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for debit with receiver")
	}
}

func TestTransactionRequestValidateRejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		req := TransactionRequest{
			TransactionType:     "CREDIT",
			Amount:              amount,
			SenderAccountNumber: "1000000001",
		}
		if err := req.Validate(); err == nil {
			t.Fatalf("expected error for amount %s", amount)
		}
	}
}
