package inventory

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("item not found")
	ErrForbidden    = errors.New("forbidden")
	ErrItemBorrowed = errors.New("item is currently borrowed")
	ErrNoPhoto      = errors.New("item has no photo")
)
