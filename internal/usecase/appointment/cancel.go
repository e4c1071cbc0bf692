package appointment

import (
	"context"

	domain "github.com/HestiaEstates/listing-api/internal/domain/appointment"
	"github.com/HestiaEstates/listing-api/internal/events"
	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/models"
	"github.com/HestiaEstates/listing-api/internal/timezone"
)

type CancelVisit struct {
	repo   domain.Repository
	events *events.Dispatcher
}

func NewCancelVisit(
	repo domain.Repository,
	events *events.Dispatcher,
) *CancelVisit {
	return &CancelVisit{
		repo:   repo,
		events: events,
	}
}

func (uc *CancelVisit) Execute(
	ctx context.Context,
	buyerID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if ap.BuyerID != buyerID {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	now := timezone.Now()
	ap, err = uc.repo.UpdateLocked(ctx, appointmentID, func(ap *models.Appointment) error {
		return domain.Cancel(ap, now)
	})
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		PropertyID: ap.PropertyID,
		ActorID:    &buyerID,
		Action:     "appointment_cancelled",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
