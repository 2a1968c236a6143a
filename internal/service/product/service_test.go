package product

import (
	"context"
	"errors"
	"testing"

	"electroshop/internal/domain"
)

type stubRepo struct {
	product     *domain.Product
	updated     *domain.Product
	updateErr   error
	lastID      string
	lastPrice   int64
	lastPct     int
	updateCalls int
}

func (s *stubRepo) List(_ context.Context) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, nil
}

func (s *stubRepo) UpdatePricing(_ context.Context, id string, priceCents int64, discountPct int) (*domain.Product, error) {
	s.updateCalls++
	s.lastID = id
	s.lastPrice = priceCents
	s.lastPct = discountPct
	return s.updated, s.updateErr
}

type stubLocator struct {
	ids []string
	err error
}

func (s *stubLocator) ListIDsWithProduct(_ context.Context, _ string) ([]string, error) {
	return s.ids, s.err
}

type stubSyncer struct {
	err    error
	synced []string
}

func (s *stubSyncer) SyncLineToProductPrice(_ context.Context, cartID, _ string) error {
	s.synced = append(s.synced, cartID)
	return s.err
}

func TestUpdatePricingValidation(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, &stubLocator{}, &stubSyncer{}, nil)

	if _, err := svc.UpdatePricing(context.Background(), "p1", -1, 0); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("negative price: expected invalid, got %v", err)
	}
	if _, err := svc.UpdatePricing(context.Background(), "p1", 100, 101); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("discount over 100: expected invalid, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("repo must not be reached on invalid input")
	}
}

func TestUpdatePricingNotFound(t *testing.T) {
	svc := New(&stubRepo{updateErr: domain.ErrNotFound}, &stubLocator{}, &stubSyncer{}, nil)
	if _, err := svc.UpdatePricing(context.Background(), "missing", 100, 0); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdatePricingFansOutToCarts(t *testing.T) {
	repo := &stubRepo{updated: &domain.Product{ID: "p1", PriceCents: 10000, DiscountPct: 10, SpecialCents: 9000}}
	syncer := &stubSyncer{}
	svc := New(repo, &stubLocator{ids: []string{"c1", "c2"}}, syncer, nil)

	got, err := svc.UpdatePricing(context.Background(), "p1", 10000, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.SpecialCents != 9000 {
		t.Fatalf("unexpected product: %+v", got)
	}
	if repo.lastID != "p1" || repo.lastPrice != 10000 || repo.lastPct != 10 {
		t.Fatalf("unexpected UpdatePricing args: %s %d %d", repo.lastID, repo.lastPrice, repo.lastPct)
	}
	if len(syncer.synced) != 2 || syncer.synced[0] != "c1" || syncer.synced[1] != "c2" {
		t.Fatalf("expected sync for c1 and c2, got %v", syncer.synced)
	}
}

func TestUpdatePricingSyncErrorPropagates(t *testing.T) {
	repo := &stubRepo{updated: &domain.Product{ID: "p1"}}
	svc := New(repo, &stubLocator{ids: []string{"c1"}}, &stubSyncer{err: domain.ErrInvalid}, nil)
	if _, err := svc.UpdatePricing(context.Background(), "p1", 100, 0); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
}
