package inventory

import (
	"context"

	"assetdesk/internal/domain"
	"assetdesk/internal/pkg/imagekit"
)

type ItemRepository interface {
	Create(ctx context.Context, it *domain.InventoryItem) error
	GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error)
	List(ctx context.Context) ([]domain.InventoryItem, error)
	Update(ctx context.Context, it *domain.InventoryItem) error
	Delete(ctx context.Context, id int64) error
}

type RequestRepository interface {
	CountActiveByItem(ctx context.Context, itemID int64) (int64, error)
}

// PhotoStore is the remote image host. Enabled reports whether credentials
// are configured; the rest of the item flow works without it.
type PhotoStore interface {
	Enabled() bool
	Upload(ctx context.Context, data []byte, fileName string) (*imagekit.UploadResult, error)
	Delete(ctx context.Context, fileID string) error
}

type AuditRecorder interface {
	Append(ctx context.Context, l *domain.AuditLog) error
}

type Notifier interface {
	Broadcast(entityType string, entityID int64, action string)
}
