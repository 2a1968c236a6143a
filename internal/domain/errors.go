package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalid indicates a business-rule violation (empty cart,
	// insufficient stock, illegal status transition).
	ErrInvalid = errors.New("invalid")
	// ErrConflict indicates a duplicate cart line or a lost concurrent update.
	ErrConflict = errors.New("conflict")
)
