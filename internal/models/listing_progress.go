package models

import "time"

type ListingProgress struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	PropertyID uint `gorm:"uniqueIndex;not null" json:"property_id"`

	BasicInfoStatus          string `gorm:"size:20;default:'pending'" json:"basic_info_status"`
	LegalDocumentsStatus     string `gorm:"size:20;default:'pending'" json:"legal_documents_status"`
	PlatformReviewStatus     string `gorm:"size:20;default:'pending'" json:"platform_review_status"`
	ReviewComment            string `gorm:"size:1000" json:"review_comment"`
	PlatformAssignmentStatus string `gorm:"size:20;default:'pending'" json:"platform_assignment_status"`
	ListingStatus            string `gorm:"size:20;default:'pending'" json:"listing_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
