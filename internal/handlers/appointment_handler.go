package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/HestiaEstates/listing-api/internal/domain/appointment"
	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/middleware"
	"github.com/HestiaEstates/listing-api/internal/models"
	ucAppointment "github.com/HestiaEstates/listing-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db      *gorm.DB
	request *ucAppointment.RequestVisit
	respond *ucAppointment.RespondToVisit
	cancel  *ucAppointment.CancelVisit
	finish  *ucAppointment.CompleteVisit
	restore *ucAppointment.RestoreVisit
	list    *ucAppointment.ListVisits
}

func NewAppointmentHandler(
	db *gorm.DB,
	request *ucAppointment.RequestVisit,
	respond *ucAppointment.RespondToVisit,
	cancel *ucAppointment.CancelVisit,
	finish *ucAppointment.CompleteVisit,
	restore *ucAppointment.RestoreVisit,
	list *ucAppointment.ListVisits,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:      db,
		request: request,
		respond: respond,
		cancel:  cancel,
		finish:  finish,
		restore: restore,
		list:    list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RequestAppointmentRequest struct {
	PropertyID uint   `json:"property_id" binding:"required"`
	Date       string `json:"date" binding:"required"` // YYYY-MM-DD
	Time       string `json:"time" binding:"required"` // HH:mm
	Comment    string `json:"comment"`
}

type RespondAppointmentRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accept reject"`
}

type CompleteAppointmentRequest struct {
	Outcome string `json:"outcome" binding:"required"`
}

type RestoreAppointmentRequest struct {
	PropertyID uint   `json:"property_id" binding:"required"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

// ======================================================
// REQUEST (BUYER)
// ======================================================

func (h *AppointmentHandler) Request(c *gin.Context) {
	buyerID := currentUserID(c)

	var req RequestAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid request body.")
		return
	}

	date, err := parseDateTime(req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid date or time.")
		return
	}

	ap, err := h.request.Execute(c.Request.Context(), ucAppointment.RequestVisitInput{
		PropertyID: req.PropertyID,
		BuyerID:    buyerID,
		Date:       date,
		Comment:    req.Comment,
	})
	if err != nil {
		httperr.FromBusiness(c, err, "Could not request appointment.")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// RESPOND (SELLER)
// ======================================================

func (h *AppointmentHandler) Respond(c *gin.Context) {
	sellerID := currentUserID(c)

	apID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req RespondAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Decision must be accept or reject.")
		return
	}

	ap, err := h.respond.Execute(
		c.Request.Context(),
		sellerID,
		apID,
		ucAppointment.Decision(req.Decision),
	)
	if err != nil {
		httperr.FromBusiness(c, err, "Could not respond to appointment.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// CANCEL (BUYER)
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	buyerID := currentUserID(c)

	apID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), buyerID, apID)
	if err != nil {
		httperr.FromBusiness(c, err, "Could not cancel appointment.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// COMPLETE (SELLER)
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	sellerID := currentUserID(c)

	apID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CompleteAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Outcome is required.")
		return
	}

	ap, err := h.finish.Execute(
		c.Request.Context(),
		sellerID,
		apID,
		domain.Outcome(req.Outcome),
	)
	if err != nil {
		httperr.FromBusiness(c, err, "Could not complete appointment.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// RESTORE (BUYER)
// ======================================================

func (h *AppointmentHandler) Restore(c *gin.Context) {
	buyerID := currentUserID(c)

	var req RestoreAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid request body.")
		return
	}

	in := ucAppointment.RestoreVisitInput{
		PropertyID: req.PropertyID,
		BuyerID:    buyerID,
	}

	if req.Date != "" && req.Time != "" {
		date, err := parseDateTime(req.Date, req.Time)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeValidation, "Invalid date or time.")
			return
		}
		in.Date = date
	}

	ap, err := h.restore.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromBusiness(c, err, "Could not restore appointment.")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

// List serves both sides: buyers get their own appointments, sellers get the
// appointments of one of their properties via ?property_id=.
func (h *AppointmentHandler) List(c *gin.Context) {
	userID := currentUserID(c)
	role, _ := c.MustGet(middleware.ContextUserRole).(string)

	filter := domain.ListFilter{
		Status: c.Query("status"),
	}

	if role == string(models.RoleSeller) {
		propIDStr := c.Query("property_id")
		if propIDStr == "" {
			httperr.BadRequest(c, httperr.CodeValidation, "property_id is required for sellers.")
			return
		}
		propID, err := strconv.ParseUint(propIDStr, 10, 64)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeValidation, "Invalid property_id.")
			return
		}

		var owned int64
		h.db.Model(&models.Property{}).
			Where("id = ? AND owner_id = ?", propID, userID).
			Count(&owned)
		if owned == 0 {
			httperr.NotFound(c, httperr.CodeNotFound, "Property not found.")
			return
		}

		filter.PropertyID = uint(propID)
	} else {
		filter.BuyerID = userID
	}

	out, err := h.list.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  out,
		"total": len(out),
	})
}
