package models

import "fmt"

// Amenities is a closed, tagged schema: exactly one category block is set and
// it must agree with the property's type. This replaces the loose JSON blob
// the marketplace UI used to probe with optional chaining.

type AmenityCategory string

const (
	AmenityResidential AmenityCategory = "residential"
	AmenityCommercial  AmenityCategory = "commercial"
	AmenityLand        AmenityCategory = "land"
)

type ResidentialAmenities struct {
	Bedrooms     int    `json:"bedrooms"`
	Bathrooms    int    `json:"bathrooms"`
	Floor        int    `json:"floor"`
	Parking      bool   `json:"parking"`
	Storage      bool   `json:"storage"`
	Elevator     bool   `json:"elevator"`
	Furnished    bool   `json:"furnished"`
	AirCondition bool   `json:"air_condition"`
	SolarHeater  bool   `json:"solar_heater"`
	Fireplace    bool   `json:"fireplace"`
	Garden       bool   `json:"garden"`
	SwimmingPool bool   `json:"swimming_pool"`
	SeaView      bool   `json:"sea_view"`
	PetsAllowed  bool   `json:"pets_allowed"`
	YearBuilt    int    `json:"year_built"`
	EnergyClass  string `json:"energy_class"`
}

type CommercialAmenities struct {
	Floors         int    `json:"floors"`
	Parking        bool   `json:"parking"`
	LoadingDock    bool   `json:"loading_dock"`
	Elevator       bool   `json:"elevator"`
	AirCondition   bool   `json:"air_condition"`
	SecuritySystem bool   `json:"security_system"`
	StreetFront    bool   `json:"street_front"`
	YearBuilt      int    `json:"year_built"`
	EnergyClass    string `json:"energy_class"`
}

type LandAmenities struct {
	Buildable   bool    `json:"buildable"`
	BuildFactor float64 `json:"build_factor"`
	RoadAccess  bool    `json:"road_access"`
	Electricity bool    `json:"electricity"`
	WaterSupply bool    `json:"water_supply"`
	CornerPlot  bool    `json:"corner_plot"`
	WithinPlan  bool    `json:"within_plan"`
}

type Amenities struct {
	Category    AmenityCategory       `json:"category"`
	Residential *ResidentialAmenities `json:"residential,omitempty"`
	Commercial  *CommercialAmenities  `json:"commercial,omitempty"`
	Land        *LandAmenities        `json:"land,omitempty"`
}

// CategoryFor maps a property type onto its amenity category.
func CategoryFor(t PropertyType) AmenityCategory {
	switch t {
	case PropertyPlot:
		return AmenityLand
	case PropertyCommercial:
		return AmenityCommercial
	default:
		return AmenityResidential
	}
}

// Validate checks the tag agrees with the property type and that only the
// tagged block is present.
func (a Amenities) Validate(t PropertyType) error {
	want := CategoryFor(t)
	if a.Category != want {
		return fmt.Errorf("amenity category %q does not match property type %q", a.Category, t)
	}

	switch a.Category {
	case AmenityResidential:
		if a.Residential == nil || a.Commercial != nil || a.Land != nil {
			return fmt.Errorf("residential amenities block required, others must be empty")
		}
	case AmenityCommercial:
		if a.Commercial == nil || a.Residential != nil || a.Land != nil {
			return fmt.Errorf("commercial amenities block required, others must be empty")
		}
	case AmenityLand:
		if a.Land == nil || a.Residential != nil || a.Commercial != nil {
			return fmt.Errorf("land amenities block required, others must be empty")
		}
	default:
		return fmt.Errorf("unknown amenity category %q", a.Category)
	}

	return nil
}
