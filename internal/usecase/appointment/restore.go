package appointment

import (
	"context"
	"time"

	domain "github.com/HestiaEstates/listing-api/internal/domain/appointment"
	"github.com/HestiaEstates/listing-api/internal/events"
	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/models"
)

type RestoreVisitInput struct {
	PropertyID uint
	BuyerID    uint

	// Optional replacement date; zero means reuse the original one.
	Date time.Time
}

type RestoreVisit struct {
	repo   domain.Repository
	events *events.Dispatcher
}

func NewRestoreVisit(
	repo domain.Repository,
	events *events.Dispatcher,
) *RestoreVisit {
	return &RestoreVisit{
		repo:   repo,
		events: events,
	}
}

// Execute recreates a pending appointment from the pair's most recent one.
// Legal only when that appointment ended in cancelled or rejected; the date
// carries over unless a new one is supplied.
func (uc *RestoreVisit) Execute(
	ctx context.Context,
	in RestoreVisitInput,
) (*models.Appointment, error) {

	latest, err := uc.repo.LatestForPair(ctx, in.PropertyID, in.BuyerID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if err := domain.CanRestore(domain.Status(latest.Status)); err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = latest.Date
	}

	ap := &models.Appointment{
		PropertyID:     in.PropertyID,
		BuyerID:        in.BuyerID,
		Date:           date,
		Status:         string(domain.InitialStatus()),
		Comment:        latest.Comment,
		RestoredFromID: &latest.ID,
	}

	if err := uc.repo.CreateExclusive(ctx, ap); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		PropertyID: in.PropertyID,
		ActorID:    &in.BuyerID,
		Action:     "appointment_restored",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
