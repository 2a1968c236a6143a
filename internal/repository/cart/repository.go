package cart

import (
	"context"

	"electroshop/internal/domain"
)

type Repository interface {
	GetOrCreateByEmail(ctx context.Context, email string) (*domain.Cart, error)
	GetByEmail(ctx context.Context, email string) (*domain.Cart, error)
	GetByEmailAndID(ctx context.Context, email, id string) (*domain.Cart, error)
	ListAll(ctx context.Context) ([]domain.Cart, error)
	ListIDsWithProduct(ctx context.Context, productID string) ([]string, error)
	AddLine(ctx context.Context, cartID, productID string, quantity int) error
	ChangeLineQuantity(ctx context.Context, cartID, productID string, delta int) error
	RemoveLine(ctx context.Context, cartID, productID string) (*domain.CartLine, error)
	SyncLineToPrice(ctx context.Context, cartID, productID string) error
}
