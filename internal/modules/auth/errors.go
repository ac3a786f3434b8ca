package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("user not found")
)
