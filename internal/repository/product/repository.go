package product

import (
	"context"

	"electroshop/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	UpdatePricing(ctx context.Context, id string, priceCents int64, discountPct int) (*domain.Product, error)
}
