package appointment

import (
	"context"

	"github.com/HestiaEstates/listing-api/internal/models"
)

type ListFilter struct {
	PropertyID uint
	BuyerID    uint
	Status     string
}

type Repository interface {
	// -------- Property --------
	GetProperty(
		ctx context.Context,
		id uint,
	) (*models.Property, error)

	GetProgress(
		ctx context.Context,
		propertyID uint,
	) (*models.ListingProgress, error)

	GetVisitSettings(
		ctx context.Context,
		propertyID uint,
	) (*models.VisitSettings, error)

	// -------- Appointment (create / pair invariant) --------

	// CreateExclusive inserts the appointment only if the (property, buyer)
	// pair has no active appointment. The check and the insert run in one
	// transaction serialized on the property row, so concurrent requests
	// queue and losers observe a conflict error.
	CreateExclusive(
		ctx context.Context,
		ap *models.Appointment,
	) error

	LatestForPair(
		ctx context.Context,
		propertyID uint,
		buyerID uint,
	) (*models.Appointment, error)

	// -------- Appointment (state change) --------

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// UpdateLocked re-reads the row under a FOR UPDATE lock, applies mutate,
	// and saves. A seller response and a buyer cancellation racing on the
	// same appointment serialize on the row lock.
	UpdateLocked(
		ctx context.Context,
		id uint,
		mutate func(*models.Appointment) error,
	) (*models.Appointment, error)

	// -------- Listing --------

	List(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)
}
