package user

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("user not found")
	ErrForbidden    = errors.New("forbidden")
	ErrEmailTaken   = errors.New("email is already registered")
	ErrSelfDeletion = errors.New("cannot delete own account")
	ErrLastAdmin    = errors.New("cannot demote or delete the last admin")
)
