package seed

import (
	"context"
	"fmt"
	"time"

	"electroshop/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name        string
	PriceCents  int64
	DiscountPct int
	Quantity    int
}

type addressSeed struct {
	Email   string
	City    string
	Street  string
	Number  int
	Pincode string
}

type sessionSeed struct {
	Token string
	Email string
	Role  string
}

// Apply inserts demo data for manual testing: a small catalog plus the
// addresses and identity sessions that external collaborators would
// normally provide. Idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{Name: "Walnut Keyboard", PriceCents: 12900, DiscountPct: 0, Quantity: 25},
		{Name: "USB-C Dock", PriceCents: 10000, DiscountPct: 10, Quantity: 10},
		{Name: "4K Monitor", PriceCents: 44900, DiscountPct: 5, Quantity: 7},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	addresses := []addressSeed{
		{Email: "alice@example.com", City: "Warsaw", Street: "Nowy Swiat", Number: 15, Pincode: "00-029"},
		{Email: "bob@example.com", City: "Krakow", Street: "Florianska", Number: 3, Pincode: "31-019"},
	}
	for _, a := range addresses {
		if err := upsertAddress(ctx, pool, a); err != nil {
			return fmt.Errorf("upsert address for %s: %w", a.Email, err)
		}
	}

	sessions := []sessionSeed{
		{Token: "demo-alice-token", Email: "alice@example.com", Role: domain.RoleUser},
		{Token: "demo-bob-token", Email: "bob@example.com", Role: domain.RoleUser},
		{Token: "demo-admin-token", Email: "admin@example.com", Role: domain.RoleAdmin},
	}
	for _, s := range sessions {
		if err := upsertSession(ctx, pool, s); err != nil {
			return fmt.Errorf("upsert session for %s: %w", s.Email, err)
		}
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, price_cents, discount_pct, special_cents, quantity)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT DO NOTHING
`
	_, err := pool.Exec(ctx, q, p.Name, p.PriceCents, p.DiscountPct,
		domain.SpecialPriceCents(p.PriceCents, p.DiscountPct), p.Quantity)
	return err
}

func upsertAddress(ctx context.Context, pool *pgxpool.Pool, a addressSeed) error {
	const q = `
INSERT INTO addresses (email, city, street, number, pincode)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT DO NOTHING
`
	_, err := pool.Exec(ctx, q, a.Email, a.City, a.Street, a.Number, a.Pincode)
	return err
}

func upsertSession(ctx context.Context, pool *pgxpool.Pool, s sessionSeed) error {
	const q = `
INSERT INTO sessions (token, email, role, expires_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (token) DO UPDATE SET expires_at = EXCLUDED.expires_at
`
	_, err := pool.Exec(ctx, q, s.Token, s.Email, s.Role, time.Now().Add(30*24*time.Hour))
	return err
}
