package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PropertyID uint     `gorm:"index;not null" json:"property_id"`
	Property   Property `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BuyerID uint `gorm:"index;not null" json:"buyer_id"`
	Buyer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Date time.Time `gorm:"not null" json:"date"`

	Status  string `gorm:"size:20;default:'pending'" json:"status"`
	Outcome string `gorm:"size:30" json:"outcome"`

	// Free-form note attached to buyer-proposed dates.
	Comment string `gorm:"size:500" json:"comment"`

	// Set when this row was recreated from a terminal one via restore.
	RestoredFromID *uint `json:"restored_from_id"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	RespondedAt *time.Time `json:"responded_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
