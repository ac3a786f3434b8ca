package audit

import (
	"context"

	"assetdesk/internal/domain"
	"assetdesk/internal/pkg/utils"
)

type Repository interface {
	List(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
}

// LogView resolves the acting user's name and unpacks the details JSON.
type LogView struct {
	domain.AuditLog
	UserName string         `json:"user_name"`
	Details  map[string]any `json:"details"`
}

type Service struct {
	logs  Repository
	users UserRepository
}

func NewService(logs Repository, users UserRepository) *Service {
	return &Service{logs: logs, users: users}
}

// List returns the newest entries first. The repository caps the limit.
func (s *Service) List(ctx context.Context, limit int) ([]LogView, error) {
	entries, err := s.logs.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	out := make([]LogView, 0, len(entries))
	for _, e := range entries {
		out = append(out, LogView{
			AuditLog: e,
			UserName: names[e.UserID],
			Details:  utils.StringToDetails(e.Details),
		})
	}
	return out, nil
}
