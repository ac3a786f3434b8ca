package auth

import (
	"context"

	"assetdesk/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}

type AuditRecorder interface {
	Append(ctx context.Context, l *domain.AuditLog) error
}
