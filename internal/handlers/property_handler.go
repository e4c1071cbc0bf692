package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HestiaEstates/listing-api/internal/domain/listing"
	"github.com/HestiaEstates/listing-api/internal/events"
	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/httpresp"
	"github.com/HestiaEstates/listing-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type PropertyHandler struct {
	db     *gorm.DB
	events *events.Dispatcher
}

func NewPropertyHandler(db *gorm.DB, events *events.Dispatcher) *PropertyHandler {
	return &PropertyHandler{db: db, events: events}
}

// ======================================================
// REQUESTS
// ======================================================

type CreatePropertyRequest struct {
	Type        string  `json:"type" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	City        string  `json:"city" binding:"required"`
	Address     string  `json:"address"`
	AreaSqm     float64 `json:"area_sqm" binding:"required,gt=0"`

	Amenities models.Amenities `json:"amenities" binding:"required"`
}

type UpdatePropertyRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	City        *string  `json:"city"`
	Address     *string  `json:"address"`
	AreaSqm     *float64 `json:"area_sqm"`

	Amenities *models.Amenities `json:"amenities"`
}

// ======================================================
// CREATE
// ======================================================

func (h *PropertyHandler) Create(c *gin.Context) {
	sellerID := currentUserID(c)

	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid request body.")
		return
	}

	ptype := models.PropertyType(req.Type)
	if !ptype.Valid() {
		httperr.BadRequest(c, httperr.CodeValidation, "Unknown property type.")
		return
	}

	if err := req.Amenities.Validate(ptype); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	prop := models.Property{
		OwnerID:     sellerID,
		Type:        ptype,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		City:        req.City,
		Address:     req.Address,
		AreaSqm:     req.AreaSqm,
		Amenities:   req.Amenities,

		// A fully specified creation completes the basic-info stage outright.
		Progress: models.ListingProgress{
			BasicInfoStatus:          listing.StatusCompleted,
			LegalDocumentsStatus:     listing.StatusPending,
			PlatformReviewStatus:     listing.StatusPending,
			PlatformAssignmentStatus: listing.StatusPending,
			ListingStatus:            listing.StatusPending,
		},
	}

	if err := h.db.Create(&prop).Error; err != nil {
		httperr.Internal(c, "failed_to_create_property", "Could not create property.")
		return
	}

	h.events.Dispatch(events.Event{
		PropertyID: prop.ID,
		ActorID:    &sellerID,
		Action:     "property_created",
		Entity:     "property",
		EntityID:   &prop.ID,
	})

	httpresp.Created(c, prop)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *PropertyHandler) List(c *gin.Context) {
	sellerID := currentUserID(c)

	var props []models.Property
	if err := h.db.
		Preload("Progress").
		Where("owner_id = ?", sellerID).
		Order("created_at DESC").
		Find(&props).Error; err != nil {

		httperr.Internal(c, "failed_to_list_properties", "Could not list properties.")
		return
	}

	httpresp.List(c, props)
}

func (h *PropertyHandler) Get(c *gin.Context) {
	prop, ok := ownedProperty(c, h.db)
	if !ok {
		return
	}

	if err := h.db.Preload("Progress").First(prop, prop.ID).Error; err != nil {
		httperr.Internal(c, "failed_to_load_property", "Could not load property.")
		return
	}

	c.JSON(http.StatusOK, prop)
}

// ======================================================
// UPDATE
// ======================================================

func (h *PropertyHandler) Update(c *gin.Context) {
	prop, ok := ownedProperty(c, h.db)
	if !ok {
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid request body.")
		return
	}

	if req.Title != nil {
		prop.Title = *req.Title
	}
	if req.Description != nil {
		prop.Description = *req.Description
	}
	if req.Price != nil {
		prop.Price = *req.Price
	}
	if req.City != nil {
		prop.City = *req.City
	}
	if req.Address != nil {
		prop.Address = *req.Address
	}
	if req.AreaSqm != nil {
		prop.AreaSqm = *req.AreaSqm
	}
	if req.Amenities != nil {
		if err := req.Amenities.Validate(prop.Type); err != nil {
			httperr.BadRequest(c, httperr.CodeValidation, err.Error())
			return
		}
		prop.Amenities = *req.Amenities
	}

	if err := h.db.Save(prop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_property", "Could not update property.")
		return
	}

	c.JSON(http.StatusOK, prop)
}
