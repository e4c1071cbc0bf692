package models

import "time"

type PropertyType string

const (
	PropertyPlot       PropertyType = "plot"
	PropertyApartment  PropertyType = "apartment"
	PropertyHouse      PropertyType = "house"
	PropertyCommercial PropertyType = "commercial"
	PropertyVilla      PropertyType = "villa"
)

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyPlot, PropertyApartment, PropertyHouse, PropertyCommercial, PropertyVilla:
		return true
	}
	return false
}

// DocumentResponsibility records which path satisfies the legal-documents
// stage: the seller uploads everything, or a delegated lawyer handles it.
type DocumentResponsibility string

const (
	ResponsibilitySelf   DocumentResponsibility = "self"
	ResponsibilityLawyer DocumentResponsibility = "lawyer"
)

type Property struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID uint `gorm:"index;not null" json:"owner_id"`
	Owner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Type PropertyType `gorm:"size:20;not null" json:"type"`

	Title       string  `gorm:"size:150;not null" json:"title"`
	Description string  `gorm:"size:2000" json:"description"`
	Price       float64 `json:"price"`
	City        string  `gorm:"size:100" json:"city"`
	Address     string  `gorm:"size:255" json:"address"`
	AreaSqm     float64 `json:"area_sqm"`

	DocumentResponsibility DocumentResponsibility `gorm:"size:10;default:'self'" json:"document_responsibility"`

	Amenities Amenities `gorm:"serializer:json" json:"amenities"`

	Progress ListingProgress `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
