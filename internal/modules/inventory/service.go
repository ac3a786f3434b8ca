package inventory

import (
	"context"
	"errors"
	"log"
	"strings"

	"assetdesk/internal/domain"
	"assetdesk/internal/pkg/utils"

	"gorm.io/gorm"
)

type Service struct {
	items    ItemRepository
	requests RequestRepository
	photos   PhotoStore
	audit    AuditRecorder
	notifs   Notifier
}

func NewService(
	items ItemRepository,
	requests RequestRepository,
	photos PhotoStore,
	audit AuditRecorder,
	notifs Notifier,
) *Service {
	return &Service{
		items:    items,
		requests: requests,
		photos:   photos,
		audit:    audit,
		notifs:   notifs,
	}
}

func (s *Service) Create(ctx context.Context, actor *domain.User, req CreateItemRequest) (*domain.InventoryItem, error) {
	if !isWriter(actor.Role) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Category) == "" {
		return nil, ErrValidation
	}

	condition := domain.ItemCondition(req.Condition)
	if req.Condition == "" {
		condition = domain.ConditionGood
	}
	if !condition.Valid() {
		return nil, ErrValidation
	}

	it := &domain.InventoryItem{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		SerialNumber:  req.SerialNumber,
		Condition:     condition,
		Status:        domain.ItemAvailable,
		Location:      req.Location,
		PurchasePrice: req.PurchasePrice,
		PurchaseDate:  req.PurchaseDate,
	}

	if err := s.items.Create(ctx, it); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor.ID, "created", it.ID, map[string]any{"name": it.Name, "category": it.Category})
	if s.notifs != nil {
		s.notifs.Broadcast(string(domain.EntityItem), it.ID, "created")
	}
	return it, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

func (s *Service) List(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.items.List(ctx)
}

func (s *Service) Update(ctx context.Context, actor *domain.User, id int64, req UpdateItemRequest) (*domain.InventoryItem, error) {
	if !isWriter(actor.Role) {
		return nil, ErrForbidden
	}

	it, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := map[string]any{}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrValidation
		}
		it.Name = *req.Name
		changed["name"] = it.Name
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Category != nil {
		if strings.TrimSpace(*req.Category) == "" {
			return nil, ErrValidation
		}
		it.Category = *req.Category
		changed["category"] = it.Category
	}
	if req.SerialNumber != nil {
		it.SerialNumber = *req.SerialNumber
	}
	if req.Condition != nil {
		cond := domain.ItemCondition(*req.Condition)
		if !cond.Valid() {
			return nil, ErrValidation
		}
		it.Condition = cond
		changed["condition"] = string(cond)
	}
	if req.Status != nil {
		// direct status edits bypass the borrow lifecycle; admin only
		if actor.Role != domain.RoleAdmin {
			return nil, ErrForbidden
		}
		status := domain.ItemStatus(*req.Status)
		if !status.Valid() {
			return nil, ErrValidation
		}
		it.Status = status
		changed["status"] = string(status)
	}
	if req.Location != nil {
		it.Location = *req.Location
	}
	if req.PurchasePrice != nil {
		it.PurchasePrice = *req.PurchasePrice
	}
	if req.PurchaseDate != nil {
		it.PurchaseDate = req.PurchaseDate
	}

	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actor.ID, "updated", it.ID, changed)
	if s.notifs != nil {
		s.notifs.Broadcast(string(domain.EntityItem), it.ID, "updated")
	}
	return it, nil
}

// Delete removes an item. Borrowed items cannot be deleted: the active
// request must be returned first.
func (s *Service) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if actor.Role != domain.RoleAdmin {
		return ErrForbidden
	}

	it, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if it.Status == domain.ItemBorrowed {
		return ErrItemBorrowed
	}
	active, err := s.requests.CountActiveByItem(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrItemBorrowed
	}

	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}

	if it.PhotoFileID != "" && s.photos != nil && s.photos.Enabled() {
		if err := s.photos.Delete(ctx, it.PhotoFileID); err != nil {
			log.Printf("photo cleanup failed for item %d: %v", id, err)
		}
	}

	s.recordAudit(ctx, actor.ID, "deleted", id, nil)
	if s.notifs != nil {
		s.notifs.Broadcast(string(domain.EntityItem), id, "deleted")
	}
	return nil
}

// AttachPhoto uploads the image to the remote host and stores the returned
// URL and file id on the item. A previous photo is deleted best-effort.
func (s *Service) AttachPhoto(ctx context.Context, actor *domain.User, id int64, data []byte, fileName string) (*domain.InventoryItem, error) {
	if !isWriter(actor.Role) {
		return nil, ErrForbidden
	}
	if len(data) == 0 || strings.TrimSpace(fileName) == "" {
		return nil, ErrValidation
	}

	it, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := s.photos.Upload(ctx, data, fileName)
	if err != nil {
		return nil, err
	}

	oldFileID := it.PhotoFileID
	it.PhotoURL = res.URL
	it.PhotoFileID = res.FileID
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}

	if oldFileID != "" {
		if err := s.photos.Delete(ctx, oldFileID); err != nil {
			log.Printf("stale photo cleanup failed for item %d: %v", id, err)
		}
	}

	s.recordAudit(ctx, actor.ID, "photo_attached", it.ID, map[string]any{"url": it.PhotoURL})
	if s.notifs != nil {
		s.notifs.Broadcast(string(domain.EntityItem), it.ID, "updated")
	}
	return it, nil
}

func (s *Service) RemovePhoto(ctx context.Context, actor *domain.User, id int64) (*domain.InventoryItem, error) {
	if !isWriter(actor.Role) {
		return nil, ErrForbidden
	}

	it, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.PhotoFileID == "" {
		return nil, ErrNoPhoto
	}

	fileID := it.PhotoFileID
	it.PhotoURL = ""
	it.PhotoFileID = ""
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}

	if err := s.photos.Delete(ctx, fileID); err != nil {
		log.Printf("photo deletion failed for item %d: %v", id, err)
	}

	s.recordAudit(ctx, actor.ID, "photo_removed", it.ID, nil)
	return it, nil
}

func (s *Service) recordAudit(ctx context.Context, userID int64, action string, itemID int64, details map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Append(ctx, &domain.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: domain.EntityItem,
		EntityID:   itemID,
		Details:    utils.DetailsToString(details),
	})
}

func isWriter(role domain.UserRole) bool {
	return role == domain.RoleAdmin || role == domain.RoleManager
}
