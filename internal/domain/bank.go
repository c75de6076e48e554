package domain

import "time"

type Bank struct {
	ID        string
	BankName  string
	BankCode  string
	CreatedAt time.Time
}
