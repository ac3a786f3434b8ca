package auth

import (
	"context"
	"errors"

	"assetdesk/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users  UserRepository
	tokens TokenIssuer
	audit  AuditRecorder
}

func NewService(users UserRepository, tokens TokenIssuer, audit AuditRecorder) *Service {
	return &Service{users: users, tokens: tokens, audit: audit}
}

// Login verifies the credentials and issues a signed token. Lookup failures
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		_ = s.audit.Append(ctx, &domain.AuditLog{
			UserID:     u.ID,
			Action:     "login",
			EntityType: domain.EntityUser,
			EntityID:   u.ID,
			Details:    "{}",
		})
	}

	return &LoginResponse{Token: token, User: u}, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	if len(req.NewPassword) < 8 {
		return ErrValidation
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	if s.audit != nil {
		_ = s.audit.Append(ctx, &domain.AuditLog{
			UserID:     userID,
			Action:     "password_changed",
			EntityType: domain.EntityUser,
			EntityID:   userID,
			Details:    "{}",
		})
	}
	return nil
}
