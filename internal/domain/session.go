package domain

import "time"

// Session is an opaque bearer token issued by the identity collaborator.
// This core only resolves tokens to an email and role; issuance and
// password handling live elsewhere.
type Session struct {
	Token     string
	Email     string
	Role      string
	ExpiresAt time.Time
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
