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

// AgentHandler is the platform-side surface: reviewing documents and
// submissions, confirming lawyer-handled paperwork, assigning and publishing
// listings.
type AgentHandler struct {
	db       *gorm.DB
	progress *ProgressHandler
	docs     *DocumentHandler
	events   *events.Dispatcher
}

func NewAgentHandler(
	db *gorm.DB,
	progress *ProgressHandler,
	docs *DocumentHandler,
	events *events.Dispatcher,
) *AgentHandler {
	return &AgentHandler{
		db:       db,
		progress: progress,
		docs:     docs,
		events:   events,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ReviewSubmissionRequest struct {
	Result  string `json:"result" binding:"required,oneof=completed rejected"`
	Comment string `json:"comment"`
}

type ReviewDocumentRequest struct {
	Status  string `json:"status" binding:"required,oneof=approved rejected"`
	Comment string `json:"comment"`
}

// ======================================================
// REVIEW QUEUE
// ======================================================

// ReviewQueue lists properties whose legal stage is done and whose platform
// review has not completed yet.
func (h *AgentHandler) ReviewQueue(c *gin.Context) {
	var props []models.Property
	if err := h.db.
		Preload("Progress").
		Joins("JOIN listing_progresses ON listing_progresses.property_id = properties.id").
		Where("listing_progresses.legal_documents_status = ?", listing.StatusCompleted).
		Where("listing_progresses.platform_review_status IN ?",
			[]string{listing.StatusPending, listing.StatusRejected}).
		Order("properties.created_at ASC").
		Find(&props).Error; err != nil {

		httperr.Internal(c, "failed_to_list_queue", "Could not load review queue.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": props, "total": len(props)})
}

// ======================================================
// PLATFORM REVIEW
// ======================================================

func (h *AgentHandler) Review(c *gin.Context) {
	agentID := currentUserID(c)

	prop, ok := anyProperty(c, h.db)
	if !ok {
		return
	}

	var req ReviewSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Result must be completed or rejected.")
		return
	}

	h.progress.advanceAndRespond(
		c, prop,
		listing.StagePlatformReview,
		listing.Result(req.Result),
		req.Comment,
		&agentID,
	)
}

// ======================================================
// DOCUMENT REVIEW
// ======================================================

// ReviewDocument approves or rejects a document. Only the current version of
// its type can be actioned; superseded history is read-only.
func (h *AgentHandler) ReviewDocument(c *gin.Context) {
	agentID := currentUserID(c)

	prop, ok := anyProperty(c, h.db)
	if !ok {
		return
	}

	docID, ok := paramID(c, "docId")
	if !ok {
		return
	}

	var req ReviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Status must be approved or rejected.")
		return
	}

	var doc models.Document
	if err := h.db.
		Where("id = ? AND property_id = ?", docID, prop.ID).
		First(&doc).Error; err != nil {

		httperr.NotFound(c, httperr.CodeNotFound, "Document not found.")
		return
	}

	var history []models.Document
	if err := h.db.
		Where("property_id = ? AND type = ?", prop.ID, doc.Type).
		Find(&history).Error; err != nil {

		httperr.Internal(c, "failed_to_load_documents", "Could not load document history.")
		return
	}

	if cur := document.Current(history, document.Type(doc.Type)); cur == nil || cur.ID != doc.ID {
		httperr.BadRequest(c, httperr.CodeValidation, "Only the current document version can be reviewed.")
		return
	}

	doc.Status = req.Status
	doc.AdminComment = req.Comment

	if err := h.db.Save(&doc).Error; err != nil {
		httperr.Internal(c, "failed_to_save_document", "Could not save document review.")
		return
	}

	h.events.Dispatch(events.Event{
		PropertyID: prop.ID,
		ActorID:    &agentID,
		Action:     "document_" + req.Status,
		Entity:     "document",
		EntityID:   &doc.ID,
		Metadata:   map[string]any{"type": doc.Type, "comment": req.Comment},
	})

	c.JSON(http.StatusOK, doc)
}

// ======================================================
// LAWYER CONFIRMATION
// ======================================================

// ConfirmLawyer completes the legal stage for the lawyer path once the
// platform has the paperwork in hand.
func (h *AgentHandler) ConfirmLawyer(c *gin.Context) {
	agentID := currentUserID(c)

	prop, ok := anyProperty(c, h.db)
	if !ok {
		return
	}

	if prop.DocumentResponsibility != models.ResponsibilityLawyer {
		httperr.BadRequest(c, httperr.CodeInvalidTransition, "This property has no lawyer delegation.")
		return
	}

	var delegation models.LawyerDelegation
	if err := h.db.Where("property_id = ?", prop.ID).First(&delegation).Error; err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidTransition, "This property has no lawyer delegation.")
		return
	}

	h.progress.advanceAndRespond(
		c, prop,
		listing.StageLegalDocuments,
		listing.ResultCompleted,
		"",
		&agentID,
	)
}

// ======================================================
// ASSIGNMENT & PUBLICATION
// ======================================================

func (h *AgentHandler) Assign(c *gin.Context) {
	agentID := currentUserID(c)

	prop, ok := anyProperty(c, h.db)
	if !ok {
		return
	}

	h.progress.advanceAndRespond(
		c, prop,
		listing.StagePlatformAssignment,
		listing.ResultCompleted,
		"",
		&agentID,
	)
}

// Publish completes the final stage. Visit settings must exist first so the
// listing is bookable the moment it goes live.
func (h *AgentHandler) Publish(c *gin.Context) {
	agentID := currentUserID(c)

	prop, ok := anyProperty(c, h.db)
	if !ok {
		return
	}

	var count int64
	h.db.Model(&models.VisitSettings{}).
		Where("property_id = ?", prop.ID).
		Count(&count)
	if count == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidTransition,
			"Visit settings must be configured before publication.")
		return
	}

	h.progress.advanceAndRespond(
		c, prop,
		listing.StageListing,
		listing.ResultCompleted,
		"",
		&agentID,
	)
}

// ======================================================
// DOCUMENTS (AGENT VIEW)
// ======================================================

func (h *AgentHandler) ListDocuments(c *gin.Context) {
	prop, ok := anyProperty(c, h.db)
	if !ok {
		return
	}

	h.docs.list(c, prop)
}
