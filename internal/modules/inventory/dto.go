package inventory

import "time"

type CreateItemRequest struct {
	Name          string     `json:"name" binding:"required"`
	Description   string     `json:"description"`
	Category      string     `json:"category" binding:"required"`
	SerialNumber  string     `json:"serial_number"`
	Condition     string     `json:"condition"`
	Location      string     `json:"location"`
	PurchasePrice float64    `json:"purchase_price"`
	PurchaseDate  *time.Time `json:"purchase_date"`
}

// UpdateItemRequest carries partial updates; nil fields are left untouched.
type UpdateItemRequest struct {
	Name          *string    `json:"name"`
	Description   *string    `json:"description"`
	Category      *string    `json:"category"`
	SerialNumber  *string    `json:"serial_number"`
	Condition     *string    `json:"condition"`
	Status        *string    `json:"status"`
	Location      *string    `json:"location"`
	PurchasePrice *float64   `json:"purchase_price"`
	PurchaseDate  *time.Time `json:"purchase_date"`
}
