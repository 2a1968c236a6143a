package product

import (
	"context"
	"fmt"
	"io"
	"log"

	"electroshop/internal/domain"
	productrepo "electroshop/internal/repository/product"
)

type Service struct {
	repo     productrepo.Repository
	carts    cartLocator
	cartSync lineSyncer
	logger   *log.Logger
}

type cartLocator interface {
	ListIDsWithProduct(ctx context.Context, productID string) ([]string, error)
}

type lineSyncer interface {
	SyncLineToProductPrice(ctx context.Context, cartID, productID string) error
}

func New(repo productrepo.Repository, carts cartLocator, cartSync lineSyncer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, carts: carts, cartSync: cartSync, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdatePricing changes a product's price or discount and re-prices the
// line in every cart currently holding the product, so cart totals track
// the new special price.
func (s *Service) UpdatePricing(ctx context.Context, productID string, priceCents int64, discountPct int) (*domain.Product, error) {
	if priceCents < 0 {
		return nil, fmt.Errorf("price can't be negative: %w", domain.ErrInvalid)
	}
	if discountPct < 0 || discountPct > 100 {
		return nil, fmt.Errorf("discount must be between 0 and 100: %w", domain.ErrInvalid)
	}

	updated, err := s.repo.UpdatePricing(ctx, productID, priceCents, discountPct)
	if err != nil {
		return nil, err
	}

	cartIDs, err := s.carts.ListIDsWithProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	for _, cartID := range cartIDs {
		if err := s.cartSync.SyncLineToProductPrice(ctx, cartID, productID); err != nil {
			return nil, err
		}
	}
	if len(cartIDs) > 0 {
		s.logger.Printf("product service: re-priced product %s in %d carts", productID, len(cartIDs))
	}
	return updated, nil
}
