package appointment

import (
	"context"
	"time"

	domain "github.com/HestiaEstates/listing-api/internal/domain/appointment"
	"github.com/HestiaEstates/listing-api/internal/domain/listing"
	"github.com/HestiaEstates/listing-api/internal/domain/visit"
	"github.com/HestiaEstates/listing-api/internal/events"
	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/models"
	"github.com/HestiaEstates/listing-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type RequestVisitInput struct {
	PropertyID uint
	BuyerID    uint

	Date    time.Time
	Comment string
}

// ======================================================
// USE CASE
// ======================================================

type RequestVisit struct {
	repo   domain.Repository
	events *events.Dispatcher
}

func NewRequestVisit(
	repo domain.Repository,
	events *events.Dispatcher,
) *RequestVisit {
	return &RequestVisit{
		repo:   repo,
		events: events,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RequestVisit) Execute(
	ctx context.Context,
	in RequestVisitInput,
) (*models.Appointment, error) {

	prop, err := uc.repo.GetProperty(ctx, in.PropertyID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if prop.OwnerID == in.BuyerID {
		return nil, httperr.ErrBusiness(httperr.CodeOwnerConflict)
	}

	progress, err := uc.repo.GetProgress(ctx, in.PropertyID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	if _, live := listing.CurrentStage(progress); !live {
		return nil, httperr.ErrBusinessf(
			httperr.CodeValidation,
			"property %d is not published", in.PropertyID,
		)
	}

	settings, err := uc.repo.GetVisitSettings(ctx, in.PropertyID)
	if err != nil {
		return nil, httperr.ErrBusinessf(
			httperr.CodeValidation,
			"property %d has no visit settings", in.PropertyID,
		)
	}

	now := timezone.Now()
	if !in.Date.After(now) {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	// Slot-scheduled properties only accept dates the seller made available;
	// proposal mode accepts any future date plus an optional comment.
	if settings.SchedulingType == models.SchedulingSellerAvailability {
		if !visit.SlotMatches(settings, in.Date) {
			return nil, httperr.ErrBusinessf(
				httperr.CodeValidation,
				"date does not match the seller's availability",
			)
		}
	}

	ap := &models.Appointment{
		PropertyID: in.PropertyID,
		BuyerID:    in.BuyerID,
		Date:       in.Date,
		Status:     string(domain.InitialStatus()),
		Comment:    in.Comment,
	}

	if err := uc.repo.CreateExclusive(ctx, ap); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		PropertyID: in.PropertyID,
		ActorID:    &in.BuyerID,
		Action:     "appointment_requested",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
