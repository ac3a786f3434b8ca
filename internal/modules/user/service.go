package user

import (
	"context"
	"errors"
	"strings"

	"assetdesk/internal/domain"
	"assetdesk/internal/pkg/utils"
	"assetdesk/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

type Service struct {
	users  Repository
	depts  DepartmentRepository
	audit  AuditRecorder
	notifs Notifier
}

func NewService(users Repository, depts DepartmentRepository, audit AuditRecorder, notifs Notifier) *Service {
	return &Service{users: users, depts: depts, audit: audit, notifs: notifs}
}

// Create registers a new account with a generated temporary password. The
// password is returned in the result and never persisted in clear text.
func (s *Service) Create(ctx context.Context, actor *domain.User, req CreateUserRequest) (*CreatedUser, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	role := domain.UserRole(req.Role)
	if !role.Valid() {
		return nil, ErrValidation
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, ErrValidation
	}
	if err := s.checkDepartmentRefs(ctx, req.DepartmentID, req.SubDepartmentID); err != nil {
		return nil, err
	}

	temp := utils.GenerateTemporaryPassword(temporaryPasswordLength)
	hash, err := bcrypt.GenerateFromPassword([]byte(temp), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:    string(hash),
		Name:            req.Name,
		Role:            role,
		DepartmentID:    req.DepartmentID,
		SubDepartmentID: req.SubDepartmentID,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.recordAudit(ctx, actor.ID, "created", u.ID, map[string]any{"email": u.Email, "role": string(u.Role)})
	if s.notifs != nil {
		s.notifs.Broadcast(string(domain.EntityUser), u.ID, "created")
	}
	return &CreatedUser{User: u, TemporaryPassword: temp}, nil
}

func (s *Service) Get(ctx context.Context, actor *domain.User, id int64) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin && actor.ID != id {
		return nil, ErrForbidden
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleManager {
		return nil, ErrForbidden
	}
	return s.users.List(ctx)
}

func (s *Service) Update(ctx context.Context, actor *domain.User, id int64, req UpdateUserRequest) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	u, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	changed := map[string]any{}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrValidation
		}
		u.Name = *req.Name
		changed["name"] = u.Name
	}
	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		if !role.Valid() {
			return nil, ErrValidation
		}
		if u.Role == domain.RoleAdmin && role != domain.RoleAdmin {
			if err := s.ensureAnotherAdmin(ctx, u.ID); err != nil {
				return nil, err
			}
		}
		u.Role = role
		changed["role"] = string(role)
	}
	if req.DepartmentID != nil || req.SubDepartmentID != nil {
		deptID := u.DepartmentID
		subID := u.SubDepartmentID
		if req.DepartmentID != nil {
			deptID = req.DepartmentID
			// moving departments clears the sub-department unless one is given
			if req.SubDepartmentID == nil {
				subID = nil
			}
		}
		if req.SubDepartmentID != nil {
			subID = req.SubDepartmentID
		}
		if err := s.checkDepartmentRefs(ctx, deptID, subID); err != nil {
			return nil, err
		}
		u.DepartmentID = deptID
		u.SubDepartmentID = subID
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor.ID, "updated", u.ID, changed)
	if s.notifs != nil {
		s.notifs.Broadcast(string(domain.EntityUser), u.ID, "updated")
	}
	return u, nil
}

// ResetPassword generates a fresh temporary password for the account.
func (s *Service) ResetPassword(ctx context.Context, actor *domain.User, id int64) (*CreatedUser, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	u, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	temp := utils.GenerateTemporaryPassword(temporaryPasswordLength)
	hash, err := bcrypt.GenerateFromPassword([]byte(temp), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor.ID, "password_reset", u.ID, nil)
	return &CreatedUser{User: u, TemporaryPassword: temp}, nil
}

func (s *Service) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if actor.Role != domain.RoleAdmin {
		return ErrForbidden
	}
	if actor.ID == id {
		return ErrSelfDeletion
	}

	u, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if u.Role == domain.RoleAdmin {
		if err := s.ensureAnotherAdmin(ctx, u.ID); err != nil {
			return err
		}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.recordAudit(ctx, actor.ID, "deleted", id, map[string]any{"email": u.Email})
	if s.notifs != nil {
		s.notifs.Broadcast(string(domain.EntityUser), id, "deleted")
	}
	return nil
}

func (s *Service) checkDepartmentRefs(ctx context.Context, deptID, subID *int64) error {
	if deptID == nil {
		if subID != nil {
			return ErrValidation
		}
		return nil
	}
	if _, err := s.depts.GetByID(ctx, *deptID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrValidation
		}
		return err
	}
	if subID != nil {
		sd, err := s.depts.GetSubByID(ctx, *subID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrValidation
			}
			return err
		}
		if sd.DepartmentID != *deptID {
			return ErrValidation
		}
	}
	return nil
}

func (s *Service) ensureAnotherAdmin(ctx context.Context, excludeID int64) error {
	all, err := s.users.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range all {
		if u.Role == domain.RoleAdmin && u.ID != excludeID {
			return nil
		}
	}
	return ErrLastAdmin
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action string, userID int64, details map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Append(ctx, &domain.AuditLog{
		UserID:     actorID,
		Action:     action,
		EntityType: domain.EntityUser,
		EntityID:   userID,
		Details:    utils.DetailsToString(details),
	})
}
