package address

import (
	"context"

	"electroshop/internal/domain"
)

// Repository is read-only: addresses belong to the address-book
// collaborator and checkout only references them by id.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Address, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Address, error)
}
