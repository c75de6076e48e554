package models

import (
	"errors"
	"strings"
)

type AddBankRequest struct {
	BankName string `json:"bankName"`
	BankCode string `json:"bankCode"`
}

func (r AddBankRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.BankName) == "" {
		errs = append(errs, "bankName is required")
	}

	code := strings.TrimSpace(r.BankCode)
	if len(code) != 6 || !digitsOnly(code) {
		errs = append(errs, "bankCode must be exactly 6 digits")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type BankResponse struct {
	ID       string `json:"id"`
	BankName string `json:"bankName"`
	BankCode string `json:"bankCode"`
}
