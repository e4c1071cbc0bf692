package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/middleware"
	"github.com/HestiaEstates/listing-api/internal/models"
	"github.com/HestiaEstates/listing-api/internal/timezone"
)

func currentUserID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid identifier.")
		return 0, false
	}
	return uint(id), true
}

// ownedProperty loads the path property scoped to the authenticated seller.
// Writes the error response itself on failure.
func ownedProperty(c *gin.Context, db *gorm.DB) (*models.Property, bool) {
	propID, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}

	var prop models.Property
	if err := db.
		Where("id = ? AND owner_id = ?", propID, currentUserID(c)).
		First(&prop).Error; err != nil {

		httperr.NotFound(c, httperr.CodeNotFound, "Property not found.")
		return nil, false
	}

	return &prop, true
}

// anyProperty loads the path property without ownership scoping (agent and
// public surfaces).
func anyProperty(c *gin.Context, db *gorm.DB) (*models.Property, bool) {
	propID, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}

	var prop models.Property
	if err := db.First(&prop, propID).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "Property not found.")
		return nil, false
	}

	return &prop, true
}

func parseDateTime(dateStr, timeStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		timezone.Location(timezone.DefaultTimezone),
	)
}
