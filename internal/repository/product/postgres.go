package product

import (
	"context"
	"errors"
	"io"
	"log"

	"electroshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, name, price_cents, discount_pct, special_cents, quantity, created_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.PriceCents, &p.DiscountPct, &p.SpecialCents, &p.Quantity, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

// UpdatePricing rewrites price and discount and derives the special price in
// the same statement so the stored value can never lag the inputs.
func (r *postgresRepo) UpdatePricing(ctx context.Context, id string, priceCents int64, discountPct int) (*domain.Product, error) {
	const q = `
UPDATE products
SET price_cents = $2,
    discount_pct = $3,
    special_cents = $2 - $2 * $3 / 100
WHERE id = $1
RETURNING ` + productColumns + `
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id, priceCents, discountPct))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update pricing id=%s error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("product repo: updated pricing id=%s price_cents=%d discount_pct=%d", id, priceCents, discountPct)
	return p, nil
}
