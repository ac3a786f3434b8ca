package report

import (
	"context"
	"time"

	"assetdesk/internal/domain"
)

type ItemRepository interface {
	List(ctx context.Context) ([]domain.InventoryItem, error)
}

type RequestRepository interface {
	List(ctx context.Context) ([]domain.BorrowRequest, error)
}

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
}

type AuditReader interface {
	ListSince(ctx context.Context, since time.Time) ([]domain.AuditLog, error)
}
