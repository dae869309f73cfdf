package account

import "errors"

var (
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("verification token invalid or expired")
	ErrNotFound           = errors.New("account not found")
)
