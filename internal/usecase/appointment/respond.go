package appointment

import (
	"context"

	domain "github.com/HestiaEstates/listing-api/internal/domain/appointment"
	"github.com/HestiaEstates/listing-api/internal/events"
	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/models"
	"github.com/HestiaEstates/listing-api/internal/timezone"
)

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

type RespondToVisit struct {
	repo   domain.Repository
	events *events.Dispatcher
}

func NewRespondToVisit(
	repo domain.Repository,
	events *events.Dispatcher,
) *RespondToVisit {
	return &RespondToVisit{
		repo:   repo,
		events: events,
	}
}

func (uc *RespondToVisit) Execute(
	ctx context.Context,
	sellerID uint,
	appointmentID uint,
	decision Decision,
) (*models.Appointment, error) {

	if decision != DecisionAccept && decision != DecisionReject {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "unknown decision %q", decision)
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
		// Sellers only see their own properties' appointments.
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	now := timezone.Now()
	ap, err = uc.repo.UpdateLocked(ctx, appointmentID, func(ap *models.Appointment) error {
		if decision == DecisionAccept {
			return domain.Accept(ap, now)
		}
		return domain.Reject(ap, now)
	})
	if err != nil {
		return nil, err
	}

	action := "appointment_accepted"
	if decision == DecisionReject {
		action = "appointment_rejected"
	}

	uc.events.Dispatch(events.Event{
		PropertyID: ap.PropertyID,
		ActorID:    &sellerID,
		Action:     action,
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
