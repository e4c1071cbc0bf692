package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// EventsHandler serves a user's activity feed: everything they did plus
// everything that happened to their properties.
type EventsHandler struct {
	db *gorm.DB
}

func NewEventsHandler(db *gorm.DB) *EventsHandler {
	return &EventsHandler{db: db}
}

func (h *EventsHandler) List(c *gin.Context) {
	userID := currentUserID(c)

	action := c.Query("action")
	entity := c.Query("entity")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.
		Model(&models.DomainEvent{}).
		Where(
			"actor_id = ? OR property_id IN (?)",
			userID,
			h.db.Model(&models.Property{}).Select("id").Where("owner_id = ?", userID),
		)

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}

	if toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			q = q.Where("created_at <= ?", to.Add(24*time.Hour))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "events_count_failed", "Could not count events.")
		return
	}

	var evs []models.DomainEvent
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&evs).Error; err != nil {

		httperr.Internal(c, "events_list_failed", "Could not list events.")
		return
	}

	c.JSON(200, gin.H{
		"page":   page,
		"limit":  limit,
		"total":  total,
		"events": evs,
	})
}
