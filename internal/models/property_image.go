package models

import "time"

type PropertyImage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PropertyID uint     `gorm:"index;not null" json:"property_id"`
	Property   Property `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	FileRef  string `gorm:"size:255;not null" json:"file_ref"`
	ThumbRef string `gorm:"size:255" json:"thumb_ref"`

	ContentType string `gorm:"size:50" json:"content_type"`
	SortOrder   int    `gorm:"default:0" json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
}
