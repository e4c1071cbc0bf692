package models

import "time"

// One per property; upserted, never duplicated.
type LawyerDelegation struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	PropertyID uint `gorm:"uniqueIndex;not null" json:"property_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;not null" json:"email"`
	Phone string `gorm:"size:20;not null" json:"phone"`
	TaxID string `gorm:"size:20" json:"tax_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
