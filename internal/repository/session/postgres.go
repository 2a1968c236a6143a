package session

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

func (r *postgresRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	const q = `
SELECT token, email, role, expires_at
FROM sessions
WHERE token = $1 AND expires_at > now()
`
	var s domain.Session
	err := r.pool.QueryRow(ctx, q, token).Scan(&s.Token, &s.Email, &s.Role, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
