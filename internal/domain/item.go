package domain

import "time"

type ItemStatus string

const (
	ItemAvailable   ItemStatus = "available"
	ItemBorrowed    ItemStatus = "borrowed"
	ItemMaintenance ItemStatus = "maintenance"
	ItemRetired     ItemStatus = "retired"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemAvailable, ItemBorrowed, ItemMaintenance, ItemRetired:
		return true
	}
	return false
}

type ItemCondition string

const (
	ConditionExcellent ItemCondition = "excellent"
	ConditionGood      ItemCondition = "good"
	ConditionFair      ItemCondition = "fair"
	ConditionPoor      ItemCondition = "poor"
)

func (c ItemCondition) Valid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

type InventoryItem struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name" validate:"required"`
	Description   string        `json:"description"`
	Category      string        `json:"category" validate:"required"`
	SerialNumber  string        `json:"serial_number,omitempty"`
	Condition     ItemCondition `json:"condition"`
	Status        ItemStatus    `json:"status"`
	Location      string        `json:"location"`
	PurchasePrice float64       `json:"purchase_price,omitempty"`
	PurchaseDate  *time.Time    `json:"purchase_date,omitempty"`
	PhotoURL      string        `json:"photo_url,omitempty"`
	PhotoFileID   string        `json:"-"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
