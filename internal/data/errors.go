package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	ErrUserEmailRequired = errors.New("user email is required")
	ErrUserHashRequired  = errors.New("user password hash is required")
)
