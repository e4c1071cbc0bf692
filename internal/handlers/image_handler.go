package handlers

import (
	"io"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/httpresp"
	"github.com/HestiaEstates/listing-api/internal/models"
	"github.com/HestiaEstates/listing-api/internal/storage"
)

// ======================================================
// HANDLER
// ======================================================

type ImageHandler struct {
	db    *gorm.DB
	files storage.FileStore
}

func NewImageHandler(db *gorm.DB, files storage.FileStore) *ImageHandler {
	return &ImageHandler{db: db, files: files}
}

// ======================================================
// UPLOAD
// ======================================================

// Upload stores the original photo plus a webp gallery thumbnail.
func (h *ImageHandler) Upload(c *gin.Context) {
	prop, ok := ownedProperty(c, h.db)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "An image file is required.")
		return
	}

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

	contentType := file.Header.Get("Content-Type")

	key := storage.ObjectKey(prop.ID, "images", filepath.Ext(file.Filename))
	fileRef, err := h.files.Put(c.Request.Context(), key, contentType, data)
	if err != nil {
		httperr.Internal(c, "failed_to_store_file", "Could not store image.")
		return
	}

	var thumbRef string
	if thumb, err := storage.Thumbnail(data); err == nil {
		thumbKey := storage.ObjectKey(prop.ID, "thumbs", ".webp")
		if ref, err := h.files.Put(c.Request.Context(), thumbKey, "image/webp", thumb); err == nil {
			thumbRef = ref
		}
	}

	img := models.PropertyImage{
		PropertyID:  prop.ID,
		FileRef:     fileRef,
		ThumbRef:    thumbRef,
		ContentType: contentType,
	}

	if err := h.db.Create(&img).Error; err != nil {
		httperr.Internal(c, "failed_to_save_image", "Could not save image.")
		return
	}

	httpresp.Created(c, img)
}

// ======================================================
// LIST
// ======================================================

func (h *ImageHandler) List(c *gin.Context) {
	prop, ok := ownedProperty(c, h.db)
	if !ok {
		return
	}

	var images []models.PropertyImage
	if err := h.db.
		Where("property_id = ?", prop.ID).
		Order("sort_order ASC, id ASC").
		Find(&images).Error; err != nil {

		httperr.Internal(c, "failed_to_list_images", "Could not list images.")
		return
	}

	httpresp.List(c, images)
}
