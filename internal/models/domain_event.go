package models

import "time"

// DomainEvent is the persisted form of a workflow transition. The external
// notification system consumes these rows; they double as the audit trail.
type DomainEvent struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PropertyID uint   `gorm:"index" json:"property_id"`
	ActorID    *uint  `json:"actor_id"`
	Action     string `gorm:"size:50;not null" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
