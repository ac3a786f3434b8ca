package borrow

import (
	"context"
	"time"

	"assetdesk/internal/domain"
)

// RequestRepository persists borrow requests. Approve and Return are
// transactional: the request transition and the item-status change commit or
// roll back together.
type RequestRepository interface {
	Create(ctx context.Context, req *domain.BorrowRequest) error
	GetByID(ctx context.Context, id int64) (*domain.BorrowRequest, error)
	List(ctx context.Context) ([]domain.BorrowRequest, error)
	ListByBorrower(ctx context.Context, borrowerID int64) ([]domain.BorrowRequest, error)
	Approve(ctx context.Context, requestID, approverID int64, now time.Time) (*domain.BorrowRequest, error)
	Reject(ctx context.Context, requestID, approverID int64, now time.Time) (*domain.BorrowRequest, error)
	Return(ctx context.Context, requestID int64, condition domain.ItemCondition, now time.Time) (*domain.BorrowRequest, error)
}

type ItemRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error)
	List(ctx context.Context) ([]domain.InventoryItem, error)
}

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
}

type DepartmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	GetSubByID(ctx context.Context, id int64) (*domain.SubDepartment, error)
}

type AuditRecorder interface {
	Append(ctx context.Context, l *domain.AuditLog) error
}

// Notifier fans a change notice out to connected clients. Best-effort.
type Notifier interface {
	Broadcast(entityType string, entityID int64, action string)
}
