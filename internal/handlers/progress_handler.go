package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HestiaEstates/listing-api/internal/domain/document"
	"github.com/HestiaEstates/listing-api/internal/domain/listing"
	"github.com/HestiaEstates/listing-api/internal/events"
	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ProgressHandler struct {
	db     *gorm.DB
	events *events.Dispatcher
}

func NewProgressHandler(db *gorm.DB, events *events.Dispatcher) *ProgressHandler {
	return &ProgressHandler{db: db, events: events}
}

// ======================================================
// REQUESTS
// ======================================================

type AdvanceStageRequest struct {
	Stage   string `json:"stage" binding:"required"`
	Result  string `json:"result" binding:"required"`
	Comment string `json:"comment"`
}

// ======================================================
// GET PROGRESS
// ======================================================

func (h *ProgressHandler) Get(c *gin.Context) {
	prop, ok := ownedProperty(c, h.db)
	if !ok {
		return
	}

	progress, ok := h.loadProgress(c, prop.ID)
	if !ok {
		return
	}

	current, live := listing.CurrentStage(progress)

	c.JSON(http.StatusOK, gin.H{
		"progress":      progress,
		"current_stage": current,
		"live":          live,
	})
}

// ======================================================
// ADVANCE (SELLER STAGES)
// ======================================================

// Advance moves the seller-owned stages forward. Platform stages (review,
// assignment, publication) belong to the agent surface.
func (h *ProgressHandler) Advance(c *gin.Context) {
	sellerID := currentUserID(c)

	prop, ok := ownedProperty(c, h.db)
	if !ok {
		return
	}

	var req AdvanceStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid request body.")
		return
	}

	stage := listing.Stage(req.Stage)

	switch stage {
	case listing.StageBasicInfo, listing.StageLegalDocuments:
	default:
		httperr.Forbidden(c, httperr.CodeInvalidTransition, "This stage is advanced by the platform.")
		return
	}

	// Completing the legal stage on the self path requires every required
	// document to be approved; on the lawyer path only the platform confirms.
	if stage == listing.StageLegalDocuments {
		if prop.DocumentResponsibility == models.ResponsibilityLawyer {
			httperr.BadRequest(c, httperr.CodeInvalidTransition,
				"Legal documents are handled by the delegated lawyer; the platform confirms completion.")
			return
		}

		var docs []models.Document
		if err := h.db.Where("property_id = ?", prop.ID).Find(&docs).Error; err != nil {
			httperr.Internal(c, "failed_to_load_documents", "Could not load documents.")
			return
		}

		if !document.IsComplete(prop.Type, docs) {
			httperr.BadRequest(c, httperr.CodeInvalidTransition,
				"Not every required document has an approved current version.")
			return
		}
	}

	h.advanceAndRespond(c, prop, stage, listing.Result(req.Result), req.Comment, &sellerID)
}

// ======================================================
// SHARED
// ======================================================

func (h *ProgressHandler) loadProgress(c *gin.Context, propertyID uint) (*models.ListingProgress, bool) {
	var progress models.ListingProgress
	if err := h.db.Where("property_id = ?", propertyID).First(&progress).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "Listing progress not found.")
		return nil, false
	}
	return &progress, true
}

// advanceAndRespond runs the state machine under a transaction and emits the
// stage event only for a genuine transition.
func (h *ProgressHandler) advanceAndRespond(
	c *gin.Context,
	prop *models.Property,
	stage listing.Stage,
	result listing.Result,
	comment string,
	actorID *uint,
) {
	progress, ok := h.loadProgress(c, prop.ID)
	if !ok {
		return
	}

	var delegationCount int64
	h.db.Model(&models.LawyerDelegation{}).
		Where("property_id = ?", prop.ID).
		Count(&delegationCount)

	changed, err := listing.Advance(progress, stage, result, comment, delegationCount > 0)
	if err != nil {
		httperr.FromBusiness(c, err, "Could not advance stage.")
		return
	}

	if changed {
		if err := h.db.Save(progress).Error; err != nil {
			httperr.Internal(c, "failed_to_save_progress", "Could not save progress.")
			return
		}

		action := "stage_" + string(stage) + "_" + string(result)
		h.events.Dispatch(events.Event{
			PropertyID: prop.ID,
			ActorID:    actorID,
			Action:     action,
			Entity:     "listing_progress",
			EntityID:   &progress.ID,
			Metadata:   map[string]any{"comment": comment},
		})
	}

	current, live := listing.CurrentStage(progress)

	c.JSON(http.StatusOK, gin.H{
		"progress":      progress,
		"current_stage": current,
		"live":          live,
		"changed":       changed,
	})
}
