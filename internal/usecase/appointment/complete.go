package appointment

import (
	"context"

	domain "github.com/HestiaEstates/listing-api/internal/domain/appointment"
	"github.com/HestiaEstates/listing-api/internal/events"
	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/models"
	"github.com/HestiaEstates/listing-api/internal/timezone"
)

type CompleteVisit struct {
	repo   domain.Repository
	events *events.Dispatcher
}

func NewCompleteVisit(
	repo domain.Repository,
	events *events.Dispatcher,
) *CompleteVisit {
	return &CompleteVisit{
		repo:   repo,
		events: events,
	}
}

func (uc *CompleteVisit) Execute(
	ctx context.Context,
	sellerID uint,
	appointmentID uint,
	outcome domain.Outcome,
) (*models.Appointment, error) {

	if !domain.ValidOutcome(outcome) {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "unknown outcome %q", outcome)
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	prop, err := uc.repo.GetProperty(ctx, ap.PropertyID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	if prop.OwnerID != sellerID {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	now := timezone.Now()
	ap, err = uc.repo.UpdateLocked(ctx, appointmentID, func(ap *models.Appointment) error {
		return domain.Complete(ap, outcome, now)
	})
	if err != nil {
		return nil, err
	}

	// Completion is terminal, so the (property, buyer) pair is free for a new
	// request regardless of outcome; new_appointment just signals the buyer
	// intends to use that immediately.

	uc.events.Dispatch(events.Event{
		PropertyID: ap.PropertyID,
		ActorID:    &sellerID,
		Action:     "appointment_completed",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata:   map[string]any{"outcome": string(outcome)},
	})

	return ap, nil
}
