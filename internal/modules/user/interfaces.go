package user

import (
	"context"

	"assetdesk/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

type DepartmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	GetSubByID(ctx context.Context, id int64) (*domain.SubDepartment, error)
}

type AuditRecorder interface {
	Append(ctx context.Context, l *domain.AuditLog) error
}

type Notifier interface {
	Broadcast(entityType string, entityID int64, action string)
}
