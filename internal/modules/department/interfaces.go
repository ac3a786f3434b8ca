package department

import (
	"context"

	"assetdesk/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, d *domain.Department) error
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	Update(ctx context.Context, d *domain.Department) error
	Delete(ctx context.Context, id int64) error
	CreateSub(ctx context.Context, sd *domain.SubDepartment) error
	GetSubByID(ctx context.Context, id int64) (*domain.SubDepartment, error)
	UpdateSub(ctx context.Context, sd *domain.SubDepartment) error
	ListSubs(ctx context.Context) ([]domain.SubDepartment, error)
	ListSubsByDepartment(ctx context.Context, departmentID int64) ([]domain.SubDepartment, error)
	DeleteSub(ctx context.Context, id int64) error
}

type UserRepository interface {
	ListByDepartment(ctx context.Context, departmentID int64) ([]domain.User, error)
}

type AuditRecorder interface {
	Append(ctx context.Context, l *domain.AuditLog) error
}

type Notifier interface {
	Broadcast(entityType string, entityID int64, action string)
}
