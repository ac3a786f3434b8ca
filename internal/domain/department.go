package domain

import "time"

type Department struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SubDepartment belongs to exactly one Department.
type SubDepartment struct {
	ID           int64     `json:"id"`
	DepartmentID int64     `json:"department_id"`
	Name         string    `json:"name" validate:"required"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
