package department

import (
	"context"
	"errors"
	"strings"

	"assetdesk/internal/domain"
	"assetdesk/internal/pkg/utils"

	"gorm.io/gorm"
)

type Service struct {
	repo   Repository
	users  UserRepository
	audit  AuditRecorder
	notifs Notifier
}

func NewService(repo Repository, users UserRepository, audit AuditRecorder, notifs Notifier) *Service {
	return &Service{repo: repo, users: users, audit: audit, notifs: notifs}
}

func (s *Service) Create(ctx context.Context, actor *domain.User, req CreateDepartmentRequest) (*domain.Department, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrValidation
	}

	d := &domain.Department{Name: req.Name, Description: req.Description}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor.ID, "created", domain.EntityDepartment, d.ID, map[string]any{"name": d.Name})
	if s.notifs != nil {
		s.notifs.Broadcast(string(domain.EntityDepartment), d.ID, "created")
	}
	return d, nil
}

// Get returns one department with its sub-departments and assigned users.
func (s *Service) Get(ctx context.Context, id int64) (*DepartmentView, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	subs, err := s.repo.ListSubsByDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := s.users.ListByDepartment(ctx, id)
	if err != nil {
		return nil, err
	}

	view := toView(*d, subs)
	for _, m := range members {
		view.Members = append(view.Members, MemberRef{ID: m.ID, Name: m.Name, Role: string(m.Role)})
	}
	return view, nil
}

// List returns all departments with their sub-departments attached.
func (s *Service) List(ctx context.Context) ([]DepartmentView, error) {
	depts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := s.repo.ListSubs(ctx)
	if err != nil {
		return nil, err
	}

	byDept := make(map[int64][]domain.SubDepartment)
	for _, sd := range subs {
		byDept[sd.DepartmentID] = append(byDept[sd.DepartmentID], sd)
	}

	out := make([]DepartmentView, 0, len(depts))
	for _, d := range depts {
		out = append(out, *toView(d, byDept[d.ID]))
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, actor *domain.User, id int64, req UpdateDepartmentRequest) (*domain.Department, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrValidation
		}
		d.Name = *req.Name
	}
	if req.Description != nil {
		d.Description = *req.Description
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor.ID, "updated", domain.EntityDepartment, d.ID, map[string]any{"name": d.Name})
	if s.notifs != nil {
		s.notifs.Broadcast(string(domain.EntityDepartment), d.ID, "updated")
	}
	return d, nil
}

// Delete removes the department and its sub-departments. Users assigned to
// it keep their stale reference until reassigned.
func (s *Service) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if actor.Role != domain.RoleAdmin {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}

	s.recordAudit(ctx, actor.ID, "deleted", domain.EntityDepartment, id, nil)
	if s.notifs != nil {
		s.notifs.Broadcast(string(domain.EntityDepartment), id, "deleted")
	}
	return nil
}

func (s *Service) CreateSub(ctx context.Context, actor *domain.User, req CreateSubDepartmentRequest) (*domain.SubDepartment, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrValidation
	}
	if _, err := s.repo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, mapRepoError(err)
	}

	sd := &domain.SubDepartment{
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Description:  req.Description,
	}
	if err := s.repo.CreateSub(ctx, sd); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor.ID, "created", domain.EntitySubDepartment, sd.ID, map[string]any{
		"name":          sd.Name,
		"department_id": sd.DepartmentID,
	})
	if s.notifs != nil {
		s.notifs.Broadcast(string(domain.EntitySubDepartment), sd.ID, "created")
	}
	return sd, nil
}

func (s *Service) UpdateSub(ctx context.Context, actor *domain.User, id int64, req UpdateSubDepartmentRequest) (*domain.SubDepartment, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	sd, err := s.repo.GetSubByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrValidation
		}
		sd.Name = *req.Name
	}
	if req.Description != nil {
		sd.Description = *req.Description
	}

	if err := s.repo.UpdateSub(ctx, sd); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor.ID, "updated", domain.EntitySubDepartment, sd.ID, map[string]any{"name": sd.Name})
	if s.notifs != nil {
		s.notifs.Broadcast(string(domain.EntitySubDepartment), sd.ID, "updated")
	}
	return sd, nil
}

func (s *Service) DeleteSub(ctx context.Context, actor *domain.User, id int64) error {
	if actor.Role != domain.RoleAdmin {
		return ErrForbidden
	}

	if err := s.repo.DeleteSub(ctx, id); err != nil {
		return mapRepoError(err)
	}

	s.recordAudit(ctx, actor.ID, "deleted", domain.EntitySubDepartment, id, nil)
	if s.notifs != nil {
		s.notifs.Broadcast(string(domain.EntitySubDepartment), id, "deleted")
	}
	return nil
}

func (s *Service) recordAudit(ctx context.Context, userID int64, action string, entity domain.EntityType, id int64, details map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Append(ctx, &domain.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: entity,
		EntityID:   id,
		Details:    utils.DetailsToString(details),
	})
}

func toView(d domain.Department, subs []domain.SubDepartment) *DepartmentView {
	refs := make([]SubRef, 0, len(subs))
	for _, sd := range subs {
		refs = append(refs, SubRef{ID: sd.ID, Name: sd.Name})
	}
	return &DepartmentView{
		ID:             d.ID,
		Name:           d.Name,
		Description:    d.Description,
		SubDepartments: refs,
	}
}

func mapRepoError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
