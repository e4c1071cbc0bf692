package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HestiaEstates/listing-api/internal/domain/listing"
	"github.com/HestiaEstates/listing-api/internal/events"
	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/httpresp"
	"github.com/HestiaEstates/listing-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type LawyerHandler struct {
	db     *gorm.DB
	events *events.Dispatcher
}

func NewLawyerHandler(db *gorm.DB, events *events.Dispatcher) *LawyerHandler {
	return &LawyerHandler{db: db, events: events}
}

// ======================================================
// REQUESTS
// ======================================================

type UpsertLawyerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
	TaxID string `json:"tax_id"`
}

// ======================================================
// GET
// ======================================================

func (h *LawyerHandler) Get(c *gin.Context) {
	prop, ok := ownedProperty(c, h.db)
	if !ok {
		return
	}

	var delegation models.LawyerDelegation
	if err := h.db.Where("property_id = ?", prop.ID).First(&delegation).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "No lawyer delegation for this property.")
		return
	}

	httpresp.OK(c, delegation)
}

// ======================================================
// UPSERT
// ======================================================

// Upsert records or overwrites the delegated lawyer. Delegation switches the
// property to the lawyer path and parks the legal stage on lawyer_pending
// until the platform confirms; repeating the call with the same payload is a
// no-op overwrite.
func (h *LawyerHandler) Upsert(c *gin.Context) {
	sellerID := currentUserID(c)

	prop, ok := ownedProperty(c, h.db)
	if !ok {
		return
	}

	var req UpsertLawyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Name, email and phone are required.")
		return
	}

	delegation := models.LawyerDelegation{
		PropertyID: prop.ID,
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:      strings.TrimSpace(req.Phone),
		TaxID:      strings.TrimSpace(req.TaxID),
	}

	if delegation.Name == "" || delegation.Email == "" || delegation.Phone == "" {
		httperr.BadRequest(c, httperr.CodeValidation, "Name, email and phone are required.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "property_id"}},
				DoUpdates: clause.AssignmentColumns(
					[]string{"name", "email", "phone", "tax_id", "updated_at"},
				),
			}).
			Create(&delegation).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Property{}).
			Where("id = ?", prop.ID).
			Update("document_responsibility", models.ResponsibilityLawyer).Error; err != nil {
			return err
		}

		// A completed legal stage is not reopened by re-upserting.
		return tx.Model(&models.ListingProgress{}).
			Where("property_id = ? AND legal_documents_status <> ?", prop.ID, listing.StatusCompleted).
			Update("legal_documents_status", listing.StatusLawyerPending).Error
	})

	if err != nil {
		httperr.Internal(c, "failed_to_save_delegation", "Could not save lawyer delegation.")
		return
	}

	h.events.Dispatch(events.Event{
		PropertyID: prop.ID,
		ActorID:    &sellerID,
		Action:     "lawyer_delegated",
		Entity:     "lawyer_delegation",
		EntityID:   &delegation.ID,
	})

	c.JSON(http.StatusOK, delegation)
}
