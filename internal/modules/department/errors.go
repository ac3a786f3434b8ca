package department

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("department not found")
	ErrForbidden  = errors.New("forbidden")
)
