package borrow

import (
	"context"
	"errors"
	"strings"
	"time"

	"assetdesk/internal/domain"
	"assetdesk/internal/pkg/utils"
	"assetdesk/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	requests    RequestRepository
	items       ItemRepository
	users       UserRepository
	departments DepartmentRepository
	audit       AuditRecorder
	notifs      Notifier
}

func NewService(
	requests RequestRepository,
	items ItemRepository,
	users UserRepository,
	departments DepartmentRepository,
	audit AuditRecorder,
	notifs Notifier,
) *Service {
	return &Service{
		requests:    requests,
		items:       items,
		users:       users,
		departments: departments,
		audit:       audit,
		notifs:      notifs,
	}
}

// Submit creates a pending borrow request. Only staff and admins borrow;
// managers and viewers read. The item is validated but not mutated; its
// status changes only on approval.
func (s *Service) Submit(ctx context.Context, actor *domain.User, req SubmitRequest) (*domain.BorrowRequest, error) {
	if actor.Role != domain.RoleStaff && actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	now := time.Now()

	if strings.TrimSpace(req.Purpose) == "" || req.DepartmentID == 0 {
		return nil, ErrValidation
	}
	if !req.ExpectedReturnDate.After(now) {
		return nil, ErrValidation
	}

	if _, err := s.departments.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.SubDepartmentID != nil {
		sub, err := s.departments.GetSubByID(ctx, *req.SubDepartmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if sub.DepartmentID != req.DepartmentID {
			return nil, ErrValidation
		}
	}

	item, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if item.Status != domain.ItemAvailable {
		return nil, ErrItemNotAvailable
	}

	r := &domain.BorrowRequest{
		ItemID:             req.ItemID,
		BorrowerID:         actor.ID,
		DepartmentID:       req.DepartmentID,
		SubDepartmentID:    req.SubDepartmentID,
		RequestedDate:      now,
		ExpectedReturnDate: req.ExpectedReturnDate,
		Status:             domain.RequestPending,
		Purpose:            req.Purpose,
		Notes:              req.Notes,
	}

	if err := s.requests.Create(ctx, r); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor.ID, "created", r.ID, map[string]any{
		"item_id":              r.ItemID,
		"expected_return_date": r.ExpectedReturnDate,
	})
	if s.notifs != nil {
		s.notifs.Broadcast(string(domain.EntityRequest), r.ID, "created")
	}

	return r, nil
}

// Approve transitions a pending request to active and marks the item
// borrowed. Both writes happen inside one repository transaction.
func (s *Service) Approve(ctx context.Context, actor *domain.User, requestID int64) (*domain.BorrowRequest, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	r, err := s.requests.Approve(ctx, requestID, actor.ID, time.Now())
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.recordAudit(ctx, actor.ID, "approved", r.ID, map[string]any{"item_id": r.ItemID})
	if s.notifs != nil {
		s.notifs.Broadcast(string(domain.EntityRequest), r.ID, "approved")
		s.notifs.Broadcast(string(domain.EntityItem), r.ItemID, "updated")
	}

	return r, nil
}

// Reject transitions a pending request to rejected. The item is untouched.
func (s *Service) Reject(ctx context.Context, actor *domain.User, requestID int64) (*domain.BorrowRequest, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	r, err := s.requests.Reject(ctx, requestID, actor.ID, time.Now())
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.recordAudit(ctx, actor.ID, "rejected", r.ID, nil)
	if s.notifs != nil {
		s.notifs.Broadcast(string(domain.EntityRequest), r.ID, "rejected")
	}

	return r, nil
}

// Return closes an active request (an overdue request is still active) and
// releases the item with the recorded condition.
func (s *Service) Return(ctx context.Context, actor *domain.User, requestID int64, condition domain.ItemCondition) (*domain.BorrowRequest, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	if !condition.Valid() {
		return nil, ErrValidation
	}

	r, err := s.requests.Return(ctx, requestID, condition, time.Now())
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.recordAudit(ctx, actor.ID, "returned", r.ID, map[string]any{
		"item_id":   r.ItemID,
		"condition": string(condition),
	})
	if s.notifs != nil {
		s.notifs.Broadcast(string(domain.EntityRequest), r.ID, "returned")
		s.notifs.Broadcast(string(domain.EntityItem), r.ItemID, "updated")
	}

	return r, nil
}

// List returns requests visible to the actor: staff see their own, everyone
// else sees all. Rows carry the derived display status and resolved names.
func (s *Service) List(ctx context.Context, actor *domain.User) ([]RequestView, error) {
	var (
		rows []domain.BorrowRequest
		err  error
	)
	if actor.Role == domain.RoleStaff {
		rows, err = s.requests.ListByBorrower(ctx, actor.ID)
	} else {
		rows, err = s.requests.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	itemNames := make(map[int64]string, len(items))
	for _, it := range items {
		itemNames[it.ID] = it.Name
	}
	userNames := make(map[int64]string, len(users))
	for _, u := range users {
		userNames[u.ID] = u.Name
	}

	now := time.Now()
	out := make([]RequestView, 0, len(rows))
	for _, r := range rows {
		v := RequestView{
			BorrowRequest: r,
			DisplayStatus: r.DisplayStatus(now),
			ItemName:      itemNames[r.ItemID],
			BorrowerName:  userNames[r.BorrowerID],
		}
		if r.ApprovedBy != nil {
			v.ApproverName = userNames[*r.ApprovedBy]
		}
		out = append(out, v)
	}
	return out, nil
}

// Get returns one request; staff can only read their own.
func (s *Service) Get(ctx context.Context, actor *domain.User, id int64) (*RequestView, error) {
	r, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actor.Role == domain.RoleStaff && r.BorrowerID != actor.ID {
		return nil, ErrForbidden
	}

	return &RequestView{
		BorrowRequest: *r,
		DisplayStatus: r.DisplayStatus(time.Now()),
	}, nil
}

func (s *Service) recordAudit(ctx context.Context, userID int64, action string, requestID int64, details map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Append(ctx, &domain.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: domain.EntityRequest,
		EntityID:   requestID,
		Details:    utils.DetailsToString(details),
	})
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrRequestNotPending):
		return ErrRequestNotPending
	case errors.Is(err, repository.ErrRequestNotActive):
		return ErrRequestNotActive
	case errors.Is(err, repository.ErrItemNotAvailable), errors.Is(err, repository.ErrItemNotBorrowed):
		return ErrItemNotAvailable
	}
	return err
}
