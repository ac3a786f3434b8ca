package repository

import (
	"context"
	"errors"
	"time"

	"assetdesk/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrRequestNotPending = errors.New("request is not pending")
	ErrRequestNotActive  = errors.New("request is not active")
	ErrItemNotAvailable  = errors.New("item is not available")
	ErrItemNotBorrowed   = errors.New("item is not borrowed")
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

type requestModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	ItemID             int64      `gorm:"column:item_id;index"`
	BorrowerID         int64      `gorm:"column:borrower_id;index"`
	DepartmentID       int64      `gorm:"column:department_id"`
	SubDepartmentID    *int64     `gorm:"column:sub_department_id"`
	RequestedDate      time.Time  `gorm:"column:requested_date"`
	ExpectedReturnDate time.Time  `gorm:"column:expected_return_date"`
	ActualReturnDate   *time.Time `gorm:"column:actual_return_date"`
	Status             string     `gorm:"column:status;index"`
	Purpose            string     `gorm:"column:purpose"`
	ApprovedBy         *int64     `gorm:"column:approved_by"`
	ApprovedAt         *time.Time `gorm:"column:approved_at"`
	Notes              *string    `gorm:"column:notes"`
	ReturnCondition    *string    `gorm:"column:return_condition"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (requestModel) TableName() string { return "borrow_requests" }

func toDomainRequest(m requestModel) *domain.BorrowRequest {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}
	var cond *domain.ItemCondition
	if m.ReturnCondition != nil {
		v := domain.ItemCondition(*m.ReturnCondition)
		cond = &v
	}

	return &domain.BorrowRequest{
		ID:                 m.ID,
		ItemID:             m.ItemID,
		BorrowerID:         m.BorrowerID,
		DepartmentID:       m.DepartmentID,
		SubDepartmentID:    m.SubDepartmentID,
		RequestedDate:      m.RequestedDate,
		ExpectedReturnDate: m.ExpectedReturnDate,
		ActualReturnDate:   m.ActualReturnDate,
		Status:             domain.RequestStatus(m.Status),
		Purpose:            m.Purpose,
		ApprovedBy:         m.ApprovedBy,
		ApprovedAt:         m.ApprovedAt,
		Notes:              notes,
		ReturnCondition:    cond,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toRequestModel(r *domain.BorrowRequest) requestModel {
	var notes *string
	if r.Notes != "" {
		v := r.Notes
		notes = &v
	}
	var cond *string
	if r.ReturnCondition != nil {
		v := string(*r.ReturnCondition)
		cond = &v
	}

	return requestModel{
		ID:                 r.ID,
		ItemID:             r.ItemID,
		BorrowerID:         r.BorrowerID,
		DepartmentID:       r.DepartmentID,
		SubDepartmentID:    r.SubDepartmentID,
		RequestedDate:      r.RequestedDate,
		ExpectedReturnDate: r.ExpectedReturnDate,
		ActualReturnDate:   r.ActualReturnDate,
		Status:             string(r.Status),
		Purpose:            r.Purpose,
		ApprovedBy:         r.ApprovedBy,
		ApprovedAt:         r.ApprovedAt,
		Notes:              notes,
		ReturnCondition:    cond,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.BorrowRequest) error {
	m := toRequestModel(req)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*req = *toDomainRequest(m)
	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*domain.BorrowRequest, error) {
	var m requestModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRequest(m), nil
}

func (r *RequestRepository) List(ctx context.Context) ([]domain.BorrowRequest, error) {
	var ms []requestModel
	tx := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.BorrowRequest, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRequest(m))
	}
	return out, nil
}

func (r *RequestRepository) ListByBorrower(ctx context.Context, borrowerID int64) ([]domain.BorrowRequest, error) {
	var ms []requestModel
	tx := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("created_at DESC, id DESC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.BorrowRequest, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRequest(m))
	}
	return out, nil
}

// CountActiveByItem counts requests in status "active" referencing the item.
func (r *RequestRepository) CountActiveByItem(ctx context.Context, itemID int64) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).
		Model(&requestModel{}).
		Where("item_id = ? AND status = ?", itemID, string(domain.RequestActive)).
		Count(&n)
	return n, tx.Error
}

// Approve transitions a pending request to active and the referenced item to
// borrowed as one transaction. Both conditional updates check their current
// state, so a request that is no longer pending or an item that is no longer
// available rolls the whole unit back.
func (r *RequestRepository) Approve(ctx context.Context, requestID, approverID int64, now time.Time) (*domain.BorrowRequest, error) {
	var m requestModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, requestID).Error; err != nil {
			return err
		}

		res := tx.Model(&requestModel{}).
			Where("id = ? AND status = ?", requestID, string(domain.RequestPending)).
			Updates(map[string]any{
				"status":      string(domain.RequestActive),
				"approved_by": approverID,
				"approved_at": now,
				"updated_at":  now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRequestNotPending
		}

		res = tx.Model(&itemModel{}).
			Where("id = ? AND status = ?", m.ItemID, string(domain.ItemAvailable)).
			Updates(map[string]any{
				"status":     string(domain.ItemBorrowed),
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrItemNotAvailable
		}

		return tx.First(&m, requestID).Error
	})
	if err != nil {
		return nil, err
	}
	return toDomainRequest(m), nil
}

// Reject transitions a pending request to rejected. The item is untouched.
func (r *RequestRepository) Reject(ctx context.Context, requestID, approverID int64, now time.Time) (*domain.BorrowRequest, error) {
	var m requestModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&requestModel{}).
			Where("id = ? AND status = ?", requestID, string(domain.RequestPending)).
			Updates(map[string]any{
				"status":      string(domain.RequestRejected),
				"approved_by": approverID,
				"approved_at": now,
				"updated_at":  now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRequestNotPending
		}
		return tx.First(&m, requestID).Error
	})
	if err != nil {
		return nil, err
	}
	return toDomainRequest(m), nil
}

// Return closes an active request and releases the item in one transaction.
// The item picks up the recorded return condition.
func (r *RequestRepository) Return(ctx context.Context, requestID int64, condition domain.ItemCondition, now time.Time) (*domain.BorrowRequest, error) {
	var m requestModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, requestID).Error; err != nil {
			return err
		}

		res := tx.Model(&requestModel{}).
			Where("id = ? AND status = ?", requestID, string(domain.RequestActive)).
			Updates(map[string]any{
				"status":             string(domain.RequestReturned),
				"actual_return_date": now,
				"return_condition":   string(condition),
				"updated_at":         now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRequestNotActive
		}

		res = tx.Model(&itemModel{}).
			Where("id = ? AND status = ?", m.ItemID, string(domain.ItemBorrowed)).
			Updates(map[string]any{
				"status":     string(domain.ItemAvailable),
				"condition":  string(condition),
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrItemNotBorrowed
		}

		return tx.First(&m, requestID).Error
	})
	if err != nil {
		return nil, err
	}
	return toDomainRequest(m), nil
}
