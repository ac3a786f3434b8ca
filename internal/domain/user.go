package domain

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleStaff   UserRole = "staff"
	RoleViewer  UserRole = "viewer"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff, RoleViewer:
		return true
	}
	return false
}

type User struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email" validate:"required,email"`
	PasswordHash    string    `json:"-"`
	Name            string    `json:"name"`
	Role            UserRole  `json:"role"`
	DepartmentID    *int64    `json:"department_id,omitempty"`
	SubDepartmentID *int64    `json:"sub_department_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
