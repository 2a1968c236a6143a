package order

import (
	"context"

	"electroshop/internal/domain"
)

// PlaceInput is the full write set for one checkout.
type PlaceInput struct {
	Email     string
	AddressID string
	Payment   domain.Payment
}

type Repository interface {
	Place(ctx context.Context, in PlaceInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) error
}
