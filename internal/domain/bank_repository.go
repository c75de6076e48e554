package domain

import "context"

type BankRepository interface {
	Create(ctx context.Context, bank Bank) (Bank, error)
	GetByID(ctx context.Context, id string) (Bank, error)
	GetAll(ctx context.Context) ([]Bank, error)
}
