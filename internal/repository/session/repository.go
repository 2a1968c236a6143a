package session

import (
	"context"

	"electroshop/internal/domain"
)

// Repository resolves bearer tokens issued by the identity collaborator.
// Token issuance and credential checks happen outside this service.
type Repository interface {
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
}
