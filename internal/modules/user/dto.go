package user

import "assetdesk/internal/domain"

type CreateUserRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Name            string `json:"name" validate:"required"`
	Role            string `json:"role" validate:"required,oneof=admin manager staff viewer"`
	DepartmentID    *int64 `json:"department_id"`
	SubDepartmentID *int64 `json:"sub_department_id"`
}

type UpdateUserRequest struct {
	Name            *string `json:"name"`
	Role            *string `json:"role"`
	DepartmentID    *int64  `json:"department_id"`
	SubDepartmentID *int64  `json:"sub_department_id"`
}

// CreatedUser carries the generated temporary password back to the admin
// exactly once; it is never stored or shown again.
type CreatedUser struct {
	User              *domain.User `json:"user"`
	TemporaryPassword string       `json:"temporary_password"`
}
