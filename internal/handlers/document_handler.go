package handlers

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HestiaEstates/listing-api/internal/domain/document"
	"github.com/HestiaEstates/listing-api/internal/events"
	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/models"
	"github.com/HestiaEstates/listing-api/internal/storage"
	"github.com/HestiaEstates/listing-api/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type DocumentHandler struct {
	db     *gorm.DB
	files  storage.FileStore
	events *events.Dispatcher
}

func NewDocumentHandler(db *gorm.DB, files storage.FileStore, events *events.Dispatcher) *DocumentHandler {
	return &DocumentHandler{db: db, files: files, events: events}
}

// ======================================================
// UPLOAD
// ======================================================

// Upload accepts either a multipart file (stored through the file store) or a
// pre-stored file_ref. Every upload appends a new pending row; history is
// never overwritten.
func (h *DocumentHandler) Upload(c *gin.Context) {
	sellerID := currentUserID(c)

	prop, ok := ownedProperty(c, h.db)
	if !ok {
		return
	}

	var docType document.Type
	var fileRef string

	// JSON callers reference an already-stored file; multipart callers send
	// the bytes and get a fileRef assigned.
	if c.ContentType() == "application/json" {
		var req struct {
			Type    string `json:"type" binding:"required"`
			FileRef string `json:"file_ref" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, httperr.CodeValidation, "Type and file_ref are required.")
			return
		}
		docType = document.Type(req.Type)
		fileRef = req.FileRef
	} else {
		docType = document.Type(c.PostForm("type"))
		fileRef = c.PostForm("file_ref")
	}

	if !document.ValidType(docType) {
		httperr.BadRequest(c, httperr.CodeValidation, "Unknown document type.")
		return
	}

	if file, err := c.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			httperr.BadRequest(c, httperr.CodeValidation, "Could not read uploaded file.")
			return
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			httperr.Internal(c, "failed_to_read_file", "Could not read uploaded file.")
			return
		}

		key := storage.ObjectKey(prop.ID, "documents", filepath.Ext(file.Filename))
		contentType := file.Header.Get("Content-Type")

		fileRef, err = h.files.Put(c.Request.Context(), key, contentType, data)
		if err != nil {
			httperr.Internal(c, "failed_to_store_file", "Could not store uploaded file.")
			return
		}
	}

	if fileRef == "" {
		httperr.BadRequest(c, httperr.CodeValidation, "Either a file or a file_ref is required.")
		return
	}

	var history []models.Document
	if err := h.db.
		Where("property_id = ? AND type = ?", prop.ID, string(docType)).
		Find(&history).Error; err != nil {

		httperr.Internal(c, "failed_to_load_documents", "Could not load document history.")
		return
	}

	doc := models.Document{
		PropertyID: prop.ID,
		Type:       string(docType),
		Status:     document.StatusPending,
		FileRef:    fileRef,
		UploadedAt: timezone.Now(),
	}

	// Record which row this upload replaces as current, so the history reads
	// as an explicit chain instead of a timestamp race.
	if prev := document.Current(history, docType); prev != nil {
		doc.SupersedesID = &prev.ID
	}

	if err := h.db.Create(&doc).Error; err != nil {
		httperr.Internal(c, "failed_to_save_document", "Could not save document.")
		return
	}

	// The self path moves the legal stage out of pending on first upload.
	if prop.DocumentResponsibility == models.ResponsibilitySelf {
		h.db.Model(&models.ListingProgress{}).
			Where("property_id = ? AND legal_documents_status = ?", prop.ID, "pending").
			Update("legal_documents_status", "in_progress")
	}

	h.events.Dispatch(events.Event{
		PropertyID: prop.ID,
		ActorID:    &sellerID,
		Action:     "document_uploaded",
		Entity:     "document",
		EntityID:   &doc.ID,
		Metadata:   map[string]any{"type": string(docType)},
	})

	c.JSON(http.StatusCreated, doc)
}

// ======================================================
// LIST
// ======================================================

// List returns the full upload history plus the resolved current document per
// type and the property's required set.
func (h *DocumentHandler) List(c *gin.Context) {
	prop, ok := ownedProperty(c, h.db)
	if !ok {
		return
	}

	h.list(c, prop)
}

func (h *DocumentHandler) list(c *gin.Context, prop *models.Property) {
	var docs []models.Document
	if err := h.db.
		Where("property_id = ?", prop.ID).
		Order("uploaded_at ASC, id ASC").
		Find(&docs).Error; err != nil {

		httperr.Internal(c, "failed_to_list_documents", "Could not list documents.")
		return
	}

	current := gin.H{}
	for t, d := range document.CurrentSet(docs) {
		current[string(t)] = d
	}

	c.JSON(http.StatusOK, gin.H{
		"documents":      docs,
		"current":        current,
		"required_types": document.RequiredTypes(prop.Type),
		"complete":       document.IsComplete(prop.Type, docs),
	})
}
