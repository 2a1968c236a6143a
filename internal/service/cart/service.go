package cart

import (
	"context"
	"fmt"

	"electroshop/internal/domain"
	cartrepo "electroshop/internal/repository/cart"
)

type Service struct {
	repo     cartRepo
	products productRepo
}

type cartRepo interface {
	GetOrCreateByEmail(ctx context.Context, email string) (*domain.Cart, error)
	GetByEmail(ctx context.Context, email string) (*domain.Cart, error)
	GetByEmailAndID(ctx context.Context, email, id string) (*domain.Cart, error)
	ListAll(ctx context.Context) ([]domain.Cart, error)
	AddLine(ctx context.Context, cartID, productID string, quantity int) error
	ChangeLineQuantity(ctx context.Context, cartID, productID string, delta int) error
	RemoveLine(ctx context.Context, cartID, productID string) (*domain.CartLine, error)
	SyncLineToPrice(ctx context.Context, cartID, productID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartrepo.Repository, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

// AddLine puts a product into the caller's cart, creating the cart on
// first use. The created cart survives a failed add, matching the
// lazy-creation contract.
func (s *Service) AddLine(ctx context.Context, email, productID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", domain.ErrInvalid)
	}
	cart, err := s.repo.GetOrCreateByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.repo.AddLine(ctx, cart.ID, productID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByEmail(ctx, email)
}

// UpdateLineQuantity applies a +1/-1 delta to an existing line. A line
// reaching zero is removed from the cart.
func (s *Service) UpdateLineQuantity(ctx context.Context, email, productID string, delta int) (*domain.Cart, error) {
	cart, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.repo.ChangeLineQuantity(ctx, cart.ID, productID, delta); err != nil {
		return nil, err
	}
	return s.repo.GetByEmail(ctx, email)
}

// RemoveLine deletes a product from the cart and returns a confirmation
// naming the product.
func (s *Service) RemoveLine(ctx context.Context, cartID, productID string) (string, error) {
	line, err := s.repo.RemoveLine(ctx, cartID, productID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Product %s removed from the cart", line.ProductName), nil
}

// SyncLineToProductPrice re-prices a cart line after a catalog pricing
// change. Invoked by the product service for every cart holding the product.
func (s *Service) SyncLineToProductPrice(ctx context.Context, cartID, productID string) error {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.repo.SyncLineToPrice(ctx, cartID, productID)
}

func (s *Service) GetCart(ctx context.Context, email, cartID string) (*domain.Cart, error) {
	return s.repo.GetByEmailAndID(ctx, email, cartID)
}

// GetCartByEmail resolves the caller's own cart.
func (s *Service) GetCartByEmail(ctx context.Context, email string) (*domain.Cart, error) {
	return s.repo.GetByEmail(ctx, email)
}

// ListAllCarts treats an empty store as an error. Order listings return
// empty slices instead; the asymmetry is inherited behavior, kept on
// purpose.
func (s *Service) ListAllCarts(ctx context.Context) ([]domain.Cart, error) {
	carts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(carts) == 0 {
		return nil, fmt.Errorf("no cart exists: %w", domain.ErrInvalid)
	}
	return carts, nil
}
