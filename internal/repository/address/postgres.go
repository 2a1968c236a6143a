package address

import (
	"context"
	"errors"

	"electroshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	const q = `
SELECT id::text, email, city, street, number, pincode
FROM addresses
WHERE id = $1
`
	var a domain.Address
	err := r.pool.QueryRow(ctx, q, id).Scan(&a.ID, &a.Email, &a.City, &a.Street, &a.Number, &a.Pincode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepo) ListByEmail(ctx context.Context, email string) ([]domain.Address, error) {
	const q = `
SELECT id::text, email, city, street, number, pincode
FROM addresses
WHERE email = $1
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.Email, &a.City, &a.Street, &a.Number, &a.Pincode); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
