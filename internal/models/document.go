package models

import "time"

type Document struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PropertyID uint     `gorm:"index;not null" json:"property_id"`
	Property   Property `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Type   string `gorm:"size:30;not null;index" json:"type"`
	Status string `gorm:"size:20;default:'pending'" json:"status"`

	FileRef    string    `gorm:"size:255;not null" json:"file_ref"`
	UploadedAt time.Time `gorm:"index" json:"uploaded_at"`

	// Append-only history: each upload records which row it replaced as the
	// current document for its type, instead of relying solely on timestamps.
	SupersedesID *uint `json:"supersedes_id"`

	AdminComment string `gorm:"size:1000" json:"admin_comment"`

	CreatedAt time.Time `json:"created_at"`
}
