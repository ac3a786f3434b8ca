package borrow

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrItemNotAvailable  = errors.New("item is not available")
	ErrRequestNotPending = errors.New("request is not pending")
	ErrRequestNotActive  = errors.New("request is not active")
)
