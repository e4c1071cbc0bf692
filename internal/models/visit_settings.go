package models

import (
	"time"
)

type PresenceType string

const (
	PresencePlatformOnly      PresenceType = "platform_only"
	PresenceSellerAndPlatform PresenceType = "seller_and_platform"
)

type SchedulingType string

const (
	SchedulingSellerAvailability SchedulingType = "seller_availability"
	SchedulingBuyerProposal      SchedulingType = "buyer_proposal"
)

type VisitSettings struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	PropertyID uint `gorm:"uniqueIndex;not null" json:"property_id"`

	PresenceType   PresenceType   `gorm:"size:30;not null" json:"presence_type"`
	SchedulingType SchedulingType `gorm:"size:30;not null" json:"scheduling_type"`

	// Recurring weekly availability; only meaningful under seller_availability.
	Days      []time.Weekday `gorm:"serializer:json" json:"days"`
	TimeSlots []string       `gorm:"serializer:json" json:"time_slots"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
