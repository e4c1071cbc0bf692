package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HestiaEstates/listing-api/internal/cache"
	"github.com/HestiaEstates/listing-api/internal/domain/listing"
	"github.com/HestiaEstates/listing-api/internal/domain/visit"
	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/models"
	"github.com/HestiaEstates/listing-api/internal/timezone"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPublicHandler(db *gorm.DB, cache *cache.Cache) *PublicHandler {
	return &PublicHandler{db: db, cache: cache}
}

func slotsCacheKey(propertyID uint) string {
	return fmt.Sprintf("public:slots:%d", propertyID)
}

////////////////////////////////////////////////////////
// BROWSE
////////////////////////////////////////////////////////

// ListProperties serves the public marketplace feed: published listings only,
// basic filters, cached briefly since it is the hottest read.
func (h *PublicHandler) ListProperties(c *gin.Context) {
	city := strings.TrimSpace(strings.ToLower(c.Query("city")))
	ptype := strings.TrimSpace(strings.ToLower(c.Query("type")))

	key := cache.QueryKey("public:properties", map[string]string{
		"city": city,
		"type": ptype,
	})

	var cached []models.Property
	if h.cache.Get(c.Request.Context(), key, &cached) {
		c.JSON(http.StatusOK, gin.H{"data": cached, "total": len(cached)})
		return
	}

	q := h.db.
		Joins("JOIN listing_progresses ON listing_progresses.property_id = properties.id").
		Where("listing_progresses.listing_status = ?", listing.StatusCompleted)

	if city != "" {
		q = q.Where("LOWER(properties.city) = ?", city)
	}
	if ptype != "" {
		q = q.Where("properties.type = ?", ptype)
	}

	var props []models.Property
	if err := q.Order("properties.created_at DESC").Find(&props).Error; err != nil {
		httperr.Internal(c, "failed_to_list_properties", "Could not list properties.")
		return
	}

	h.cache.Set(c.Request.Context(), key, props, 60*time.Second)

	c.JSON(http.StatusOK, gin.H{"data": props, "total": len(props)})
}

func (h *PublicHandler) GetProperty(c *gin.Context) {
	prop, ok := h.publishedProperty(c)
	if !ok {
		return
	}

	var images []models.PropertyImage
	h.db.Where("property_id = ?", prop.ID).
		Order("sort_order ASC, id ASC").
		Find(&images)

	c.JSON(http.StatusOK, gin.H{
		"property": prop,
		"images":   images,
	})
}

////////////////////////////////////////////////////////
// SLOTS
////////////////////////////////////////////////////////

// Slots returns the next bookable timestamp per availability pair. Under
// buyer_proposal there are no slots and the client switches to the proposal
// form.
func (h *PublicHandler) Slots(c *gin.Context) {
	prop, ok := h.publishedProperty(c)
	if !ok {
		return
	}

	var settings models.VisitSettings
	if err := h.db.Where("property_id = ?", prop.ID).First(&settings).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "No visit settings for this property.")
		return
	}

	if settings.SchedulingType == models.SchedulingBuyerProposal {
		c.JSON(http.StatusOK, gin.H{
			"scheduling_type": settings.SchedulingType,
			"slots":           []time.Time{},
		})
		return
	}

	key := slotsCacheKey(prop.ID)

	var slots []time.Time
	if !h.cache.Get(c.Request.Context(), key, &slots) {
		slots = visit.GenerateSlots(&settings, timezone.Now())
		// Slots are "next occurrence from now", so keep the TTL short.
		h.cache.Set(c.Request.Context(), key, slots, 60*time.Second)
	}

	c.JSON(http.StatusOK, gin.H{
		"scheduling_type": settings.SchedulingType,
		"slots":           slots,
	})
}

////////////////////////////////////////////////////////
// SHARED
////////////////////////////////////////////////////////

func (h *PublicHandler) publishedProperty(c *gin.Context) (*models.Property, bool) {
	prop, ok := anyProperty(c, h.db)
	if !ok {
		return nil, false
	}

	var progress models.ListingProgress
	if err := h.db.Where("property_id = ?", prop.ID).First(&progress).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "Property not found.")
		return nil, false
	}

	if _, live := listing.CurrentStage(&progress); !live {
		httperr.NotFound(c, httperr.CodeNotFound, "Property not found.")
		return nil, false
	}

	return prop, true
}
