package repository

import (
	"context"
	"time"

	"assetdesk/internal/domain"

	"gorm.io/gorm"
)

// AuditLogRepository is append-only: entries are written once and only read
// back, never updated or deleted.
type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

type auditLogModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	UserID     int64     `gorm:"column:user_id;index"`
	Action     string    `gorm:"column:action"`
	EntityType string    `gorm:"column:entity_type"`
	EntityID   int64     `gorm:"column:entity_id"`
	Details    string    `gorm:"column:details"`
	Timestamp  time.Time `gorm:"column:timestamp;index"`
}

func (auditLogModel) TableName() string { return "audit_logs" }

func toDomainAuditLog(m auditLogModel) *domain.AuditLog {
	return &domain.AuditLog{
		ID:         m.ID,
		UserID:     m.UserID,
		Action:     m.Action,
		EntityType: domain.EntityType(m.EntityType),
		EntityID:   m.EntityID,
		Details:    m.Details,
		Timestamp:  m.Timestamp,
	}
}

func (r *AuditLogRepository) Append(ctx context.Context, l *domain.AuditLog) error {
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now()
	}
	m := auditLogModel{
		UserID:     l.UserID,
		Action:     l.Action,
		EntityType: string(l.EntityType),
		EntityID:   l.EntityID,
		Details:    l.Details,
		Timestamp:  l.Timestamp,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*l = *toDomainAuditLog(m)
	return nil
}

func (r *AuditLogRepository) List(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var ms []auditLogModel
	tx := r.db.WithContext(ctx).Order("timestamp DESC, id DESC").Limit(limit).Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.AuditLog, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainAuditLog(m))
	}
	return out, nil
}

func (r *AuditLogRepository) ListSince(ctx context.Context, since time.Time) ([]domain.AuditLog, error) {
	var ms []auditLogModel
	tx := r.db.WithContext(ctx).
		Where("timestamp >= ?", since).
		Order("timestamp ASC, id ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.AuditLog, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainAuditLog(m))
	}
	return out, nil
}
