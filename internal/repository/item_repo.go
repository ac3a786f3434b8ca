package repository

import (
	"context"
	"time"

	"assetdesk/internal/domain"

	"gorm.io/gorm"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

type itemModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	Name          string     `gorm:"column:name"`
	Description   string     `gorm:"column:description"`
	Category      string     `gorm:"column:category;index"`
	SerialNumber  *string    `gorm:"column:serial_number"`
	Condition     string     `gorm:"column:condition"`
	Status        string     `gorm:"column:status;index"`
	Location      string     `gorm:"column:location"`
	PurchasePrice float64    `gorm:"column:purchase_price"`
	PurchaseDate  *time.Time `gorm:"column:purchase_date"`
	PhotoURL      *string    `gorm:"column:photo_url"`
	PhotoFileID   *string    `gorm:"column:photo_file_id"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (itemModel) TableName() string { return "inventory_items" }

func toDomainItem(m itemModel) *domain.InventoryItem {
	var serial, photoURL, photoFileID string
	if m.SerialNumber != nil {
		serial = *m.SerialNumber
	}
	if m.PhotoURL != nil {
		photoURL = *m.PhotoURL
	}
	if m.PhotoFileID != nil {
		photoFileID = *m.PhotoFileID
	}

	return &domain.InventoryItem{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Category:      m.Category,
		SerialNumber:  serial,
		Condition:     domain.ItemCondition(m.Condition),
		Status:        domain.ItemStatus(m.Status),
		Location:      m.Location,
		PurchasePrice: m.PurchasePrice,
		PurchaseDate:  m.PurchaseDate,
		PhotoURL:      photoURL,
		PhotoFileID:   photoFileID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toItemModel(it *domain.InventoryItem) itemModel {
	var serial, photoURL, photoFileID *string
	if it.SerialNumber != "" {
		v := it.SerialNumber
		serial = &v
	}
	if it.PhotoURL != "" {
		v := it.PhotoURL
		photoURL = &v
	}
	if it.PhotoFileID != "" {
		v := it.PhotoFileID
		photoFileID = &v
	}

	return itemModel{
		ID:            it.ID,
		Name:          it.Name,
		Description:   it.Description,
		Category:      it.Category,
		SerialNumber:  serial,
		Condition:     string(it.Condition),
		Status:        string(it.Status),
		Location:      it.Location,
		PurchasePrice: it.PurchasePrice,
		PurchaseDate:  it.PurchaseDate,
		PhotoURL:      photoURL,
		PhotoFileID:   photoFileID,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}

func (r *ItemRepository) Create(ctx context.Context, it *domain.InventoryItem) error {
	m := toItemModel(it)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*it = *toDomainItem(m)
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	var m itemModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainItem(m), nil
}

func (r *ItemRepository) List(ctx context.Context) ([]domain.InventoryItem, error) {
	var ms []itemModel
	tx := r.db.WithContext(ctx).Order("id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.InventoryItem, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainItem(m))
	}
	return out, nil
}

func (r *ItemRepository) Update(ctx context.Context, it *domain.InventoryItem) error {
	m := toItemModel(it)
	m.UpdatedAt = time.Now()
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*it = *toDomainItem(m)
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&itemModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
