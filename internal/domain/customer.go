package domain

import "time"

type Customer struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	DateOfBirth  time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
