package order

import (
	"context"
	"fmt"
	"strings"

	"electroshop/internal/domain"
	orderrepo "electroshop/internal/repository/order"
)

type Service struct {
	orders    orderRepo
	carts     cartRepo
	addresses addressRepo
}

type orderRepo interface {
	Place(ctx context.Context, in orderrepo.PlaceInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) error
}

type cartRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.Cart, error)
}

type addressRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Address, error)
}

func New(orders orderrepo.Repository, carts cartRepo, addresses addressRepo) *Service {
	return &Service{orders: orders, carts: carts, addresses: addresses}
}

// CreateInput carries the checkout request. The gateway fields are opaque
// pass-through strings.
type CreateInput struct {
	Email                  string
	AddressID              string
	Method                 string
	GatewayName            string
	GatewayPaymentID       string
	GatewayStatus          string
	GatewayResponseMessage string
}

// Create turns the user's cart into an order. The cart and address
// lookups and the emptiness check run up front, in that order, so the
// caller-visible error precedence stays stable; all writes happen inside
// the repository's single transaction, which re-verifies the cart under
// its lock.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	if strings.TrimSpace(in.Method) == "" {
		return nil, fmt.Errorf("payment method required: %w", domain.ErrInvalid)
	}

	cart, err := s.carts.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if _, err := s.addresses.GetByID(ctx, in.AddressID); err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", domain.ErrInvalid)
	}

	return s.orders.Place(ctx, orderrepo.PlaceInput{
		Email:     in.Email,
		AddressID: in.AddressID,
		Payment: domain.Payment{
			Method:                 in.Method,
			GatewayName:            in.GatewayName,
			GatewayPaymentID:       in.GatewayPaymentID,
			GatewayStatus:          in.GatewayStatus,
			GatewayResponseMessage: in.GatewayResponseMessage,
		},
	})
}

// ListByEmail returns the user's orders; an empty slice is a valid result.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return s.orders.ListByEmail(ctx, email)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAll(ctx)
}

// UpdateStatus moves an order along the closed status machine. Unknown
// statuses and illegal transitions fail as invalid; losing a concurrent
// transition fails as a conflict.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	next, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransition(next) {
		return nil, fmt.Errorf("order %s cannot move from %s to %s: %w", orderID, order.Status, next, domain.ErrInvalid)
	}
	if err := s.orders.UpdateStatus(ctx, orderID, order.Status, next); err != nil {
		return nil, err
	}
	order.Status = next
	return order, nil
}
