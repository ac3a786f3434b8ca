package domain

import "time"

type EntityType string

const (
	EntityItem          EntityType = "item"
	EntityRequest       EntityType = "request"
	EntityUser          EntityType = "user"
	EntityDepartment    EntityType = "department"
	EntitySubDepartment EntityType = "sub_department"
)

// AuditLog is an append-only record of a mutating action. Entries are never
// updated or deleted.
type AuditLog struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	Action     string     `json:"action"`
	EntityType EntityType `json:"entity_type"`
	EntityID   int64      `json:"entity_id"`
	Details    string     `json:"details,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
}
