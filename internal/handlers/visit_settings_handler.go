package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HestiaEstates/listing-api/internal/cache"
	"github.com/HestiaEstates/listing-api/internal/domain/visit"
	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/httpresp"
	"github.com/HestiaEstates/listing-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type VisitSettingsHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewVisitSettingsHandler(db *gorm.DB, cache *cache.Cache) *VisitSettingsHandler {
	return &VisitSettingsHandler{db: db, cache: cache}
}

// ======================================================
// REQUESTS
// ======================================================

type VisitSettingsRequest struct {
	PresenceType   string `json:"presence_type" binding:"required"`
	SchedulingType string `json:"scheduling_type" binding:"required"`

	Days      []time.Weekday `json:"days"`
	TimeSlots []string       `json:"time_slots"`
}

// ======================================================
// GET
// ======================================================

func (h *VisitSettingsHandler) Get(c *gin.Context) {
	prop, ok := ownedProperty(c, h.db)
	if !ok {
		return
	}

	var settings models.VisitSettings
	if err := h.db.Where("property_id = ?", prop.ID).First(&settings).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "No visit settings for this property.")
		return
	}

	httpresp.OK(c, settings)
}

// ======================================================
// UPSERT
// ======================================================

func (h *VisitSettingsHandler) Update(c *gin.Context) {
	prop, ok := ownedProperty(c, h.db)
	if !ok {
		return
	}

	var req VisitSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid request body.")
		return
	}

	settings := models.VisitSettings{
		PropertyID:     prop.ID,
		PresenceType:   models.PresenceType(req.PresenceType),
		SchedulingType: models.SchedulingType(req.SchedulingType),
		Days:           req.Days,
		TimeSlots:      req.TimeSlots,
	}

	// Clears availability under buyer_proposal; rejects empty availability
	// under seller_availability.
	if err := visit.ValidateSettings(&settings); err != nil {
		httperr.FromBusiness(c, err, "Invalid visit settings.")
		return
	}

	if err := h.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "property_id"}},
			DoUpdates: clause.AssignmentColumns(
				[]string{"presence_type", "scheduling_type", "days", "time_slots", "updated_at"},
			),
		}).
		Create(&settings).Error; err != nil {

		httperr.Internal(c, "failed_to_save_visit_settings", "Could not save visit settings.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), slotsCacheKey(prop.ID))

	c.JSON(http.StatusOK, settings)
}
