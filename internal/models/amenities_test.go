package models_test

import (
	"testing"

	"github.com/HestiaEstates/listing-api/internal/models"
)

func TestCategoryFor(t *testing.T) {
	cases := map[models.PropertyType]models.AmenityCategory{
		models.PropertyPlot:       models.AmenityLand,
		models.PropertyCommercial: models.AmenityCommercial,
		models.PropertyApartment:  models.AmenityResidential,
		models.PropertyHouse:      models.AmenityResidential,
		models.PropertyVilla:      models.AmenityResidential,
	}
	for pt, want := range cases {
		if got := models.CategoryFor(pt); got != want {
			t.Fatalf("CategoryFor(%s) = %s, want %s", pt, got, want)
		}
	}
}

func TestAmenitiesValidate(t *testing.T) {
	ok := models.Amenities{
		Category:    models.AmenityResidential,
		Residential: &models.ResidentialAmenities{Bedrooms: 2, Parking: true},
	}
	if err := ok.Validate(models.PropertyApartment); err != nil {
		t.Fatalf("valid residential: %v", err)
	}

	// Category must match the property type.
	if err := ok.Validate(models.PropertyPlot); err == nil {
		t.Fatal("residential amenities on a plot should fail")
	}

	// Tagged block must be present.
	missing := models.Amenities{Category: models.AmenityLand}
	if err := missing.Validate(models.PropertyPlot); err == nil {
		t.Fatal("land category without land block should fail")
	}

	// Only the tagged block may be set.
	mixed := models.Amenities{
		Category:    models.AmenityLand,
		Land:        &models.LandAmenities{Buildable: true},
		Residential: &models.ResidentialAmenities{},
	}
	if err := mixed.Validate(models.PropertyPlot); err == nil {
		t.Fatal("land category with a stray residential block should fail")
	}
}
