package order

import (
	"context"
	"errors"
	"testing"

	"electroshop/internal/domain"
	orderrepo "electroshop/internal/repository/order"
)

type stubOrderRepo struct {
	placed          *domain.Order
	placeErr        error
	placeCalls      int
	lastPlaceInput  orderrepo.PlaceInput
	order           *domain.Order
	getErr          error
	listByEmail     []domain.Order
	listAllOrders   []domain.Order
	updateStatusErr error
	lastStatusID    string
	lastStatusFrom  domain.OrderStatus
	lastStatusTo    domain.OrderStatus
}

func (s *stubOrderRepo) Place(_ context.Context, in orderrepo.PlaceInput) (*domain.Order, error) {
	s.placeCalls++
	s.lastPlaceInput = in
	return s.placed, s.placeErr
}

func (s *stubOrderRepo) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	return s.order, s.getErr
}

func (s *stubOrderRepo) ListByEmail(_ context.Context, _ string) ([]domain.Order, error) {
	return s.listByEmail, nil
}

func (s *stubOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	return s.listAllOrders, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, id string, from, to domain.OrderStatus) error {
	s.lastStatusID = id
	s.lastStatusFrom = from
	s.lastStatusTo = to
	return s.updateStatusErr
}

type stubCartRepo struct {
	cart  *domain.Cart
	err   error
	calls int
}

func (s *stubCartRepo) GetByEmail(_ context.Context, _ string) (*domain.Cart, error) {
	s.calls++
	return s.cart, s.err
}

type stubAddressRepo struct {
	address *domain.Address
	err     error
	calls   int
}

func (s *stubAddressRepo) GetByID(_ context.Context, _ string) (*domain.Address, error) {
	s.calls++
	return s.address, s.err
}

func cartWithOneLine() *domain.Cart {
	return &domain.Cart{
		ID:         "c1",
		Email:      "alice@example.com",
		TotalCents: 18000,
		Lines: []domain.CartLine{
			{ID: "l1", CartID: "c1", ProductID: "p1", ProductName: "Dock", Quantity: 2, PriceCents: 9000},
		},
	}
}

func checkoutInput() CreateInput {
	return CreateInput{
		Email:                  "alice@example.com",
		AddressID:              "addr-7",
		Method:                 "card",
		GatewayName:            "Stripe",
		GatewayPaymentID:       "pg1",
		GatewayStatus:          "ok",
		GatewayResponseMessage: "fine",
	}
}

func TestCreateRequiresPaymentMethod(t *testing.T) {
	orders := &stubOrderRepo{}
	svc := &Service{orders: orders, carts: &stubCartRepo{}, addresses: &stubAddressRepo{}}
	in := checkoutInput()
	in.Method = "  "
	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
	if orders.placeCalls != 0 {
		t.Fatalf("place must not be called")
	}
}

func TestCreateCartNotFound(t *testing.T) {
	orders := &stubOrderRepo{}
	addresses := &stubAddressRepo{address: &domain.Address{ID: "addr-7"}}
	svc := &Service{orders: orders, carts: &stubCartRepo{err: domain.ErrNotFound}, addresses: addresses}
	_, err := svc.Create(context.Background(), checkoutInput())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if addresses.calls != 0 || orders.placeCalls != 0 {
		t.Fatalf("no lookup or write may follow a missing cart")
	}
}

func TestCreateAddressNotFound(t *testing.T) {
	orders := &stubOrderRepo{}
	svc := &Service{
		orders:    orders,
		carts:     &stubCartRepo{cart: cartWithOneLine()},
		addresses: &stubAddressRepo{err: domain.ErrNotFound},
	}
	_, err := svc.Create(context.Background(), checkoutInput())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if orders.placeCalls != 0 {
		t.Fatalf("a failed address lookup must leave no side effects")
	}
}

func TestCreateEmptyCartIsInvalid(t *testing.T) {
	orders := &stubOrderRepo{}
	svc := &Service{
		orders:    orders,
		carts:     &stubCartRepo{cart: &domain.Cart{ID: "c1", Email: "alice@example.com"}},
		addresses: &stubAddressRepo{address: &domain.Address{ID: "addr-7"}},
	}
	_, err := svc.Create(context.Background(), checkoutInput())
	if !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
	if orders.placeCalls != 0 {
		t.Fatalf("an empty cart must leave no side effects")
	}
}

// The address lookup precedes the emptiness check, so an empty cart with a
// bad address reports the missing address.
func TestCreateErrorPrecedenceAddressBeforeEmptyCart(t *testing.T) {
	svc := &Service{
		orders:    &stubOrderRepo{},
		carts:     &stubCartRepo{cart: &domain.Cart{ID: "c1", Email: "alice@example.com"}},
		addresses: &stubAddressRepo{err: domain.ErrNotFound},
	}
	_, err := svc.Create(context.Background(), checkoutInput())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found to win over empty cart, got %v", err)
	}
}

func TestCreateHappyPath(t *testing.T) {
	placed := &domain.Order{
		ID:         "o1",
		Email:      "alice@example.com",
		TotalCents: 18000,
		Status:     domain.OrderStatusAccepted,
		AddressID:  "addr-7",
		Lines: []domain.OrderLine{
			{ProductID: "p1", Quantity: 2, PriceCents: 9000},
		},
	}
	orders := &stubOrderRepo{placed: placed}
	svc := &Service{
		orders:    orders,
		carts:     &stubCartRepo{cart: cartWithOneLine()},
		addresses: &stubAddressRepo{address: &domain.Address{ID: "addr-7"}},
	}

	got, err := svc.Create(context.Background(), checkoutInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != placed {
		t.Fatalf("unexpected order: %+v", got)
	}
	in := orders.lastPlaceInput
	if in.Email != "alice@example.com" || in.AddressID != "addr-7" {
		t.Fatalf("unexpected place input: %+v", in)
	}
	p := in.Payment
	if p.Method != "card" || p.GatewayName != "Stripe" || p.GatewayPaymentID != "pg1" || p.GatewayStatus != "ok" || p.GatewayResponseMessage != "fine" {
		t.Fatalf("gateway fields must pass through untouched: %+v", p)
	}
}

func TestListByEmailEmptyIsValid(t *testing.T) {
	svc := &Service{orders: &stubOrderRepo{}}
	got, err := svc.ListByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	svc := &Service{orders: &stubOrderRepo{order: &domain.Order{ID: "o1", Status: domain.OrderStatusAccepted}}}
	_, err := svc.UpdateStatus(context.Background(), "o1", "Order accepted")
	if !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
}

func TestUpdateStatusOrderNotFound(t *testing.T) {
	svc := &Service{orders: &stubOrderRepo{getErr: domain.ErrNotFound}}
	_, err := svc.UpdateStatus(context.Background(), "missing", "shipped")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateStatusIllegalTransition(t *testing.T) {
	orders := &stubOrderRepo{order: &domain.Order{ID: "o1", Status: domain.OrderStatusDelivered}}
	svc := &Service{orders: orders}
	_, err := svc.UpdateStatus(context.Background(), "o1", "shipped")
	if !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
	if orders.lastStatusID != "" {
		t.Fatalf("repo must not be reached for an illegal transition")
	}
}

func TestUpdateStatusHappyPath(t *testing.T) {
	orders := &stubOrderRepo{order: &domain.Order{ID: "o1", Status: domain.OrderStatusAccepted}}
	svc := &Service{orders: orders}
	got, err := svc.UpdateStatus(context.Background(), "o1", "shipped")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.OrderStatusShipped {
		t.Fatalf("unexpected status: %s", got.Status)
	}
	if orders.lastStatusID != "o1" || orders.lastStatusFrom != domain.OrderStatusAccepted || orders.lastStatusTo != domain.OrderStatusShipped {
		t.Fatalf("unexpected UpdateStatus args: %s %s %s", orders.lastStatusID, orders.lastStatusFrom, orders.lastStatusTo)
	}
}

func TestUpdateStatusConcurrentLoserConflicts(t *testing.T) {
	orders := &stubOrderRepo{
		order:           &domain.Order{ID: "o1", Status: domain.OrderStatusAccepted},
		updateStatusErr: domain.ErrConflict,
	}
	svc := &Service{orders: orders}
	_, err := svc.UpdateStatus(context.Background(), "o1", "cancelled")
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
