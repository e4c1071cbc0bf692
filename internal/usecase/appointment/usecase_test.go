package appointment_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domain "github.com/HestiaEstates/listing-api/internal/domain/appointment"
	"github.com/HestiaEstates/listing-api/internal/domain/listing"
	"github.com/HestiaEstates/listing-api/internal/domain/visit"
	"github.com/HestiaEstates/listing-api/internal/events"
	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/models"
	usecase "github.com/HestiaEstates/listing-api/internal/usecase/appointment"
)

// ======================================================
// Fakes
// ======================================================

var errNotFound = errors.New("record not found")

type fakeRepo struct {
	mu       sync.Mutex
	props    map[uint]*models.Property
	progress map[uint]*models.ListingProgress
	settings map[uint]*models.VisitSettings
	rows     map[uint]*models.Appointment
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		props:    make(map[uint]*models.Property),
		progress: make(map[uint]*models.ListingProgress),
		settings: make(map[uint]*models.VisitSettings),
		rows:     make(map[uint]*models.Appointment),
	}
}

func (r *fakeRepo) GetProperty(_ context.Context, id uint) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.props[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) GetProgress(_ context.Context, propertyID uint) (*models.ListingProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.progress[propertyID]
	if !ok {
		return nil, errNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) GetVisitSettings(_ context.Context, propertyID uint) (*models.VisitSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[propertyID]
	if !ok {
		return nil, errNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) CreateExclusive(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows {
		if row.PropertyID == ap.PropertyID &&
			row.BuyerID == ap.BuyerID &&
			domain.IsActive(domain.Status(row.Status)) {
			return httperr.ErrBusiness(httperr.CodeConflict)
		}
	}

	r.nextID++
	ap.ID = r.nextID
	ap.CreatedAt = time.Now()
	cp := *ap
	r.rows[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) LatestForPair(_ context.Context, propertyID, buyerID uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest *models.Appointment
	for _, row := range r.rows {
		if row.PropertyID != propertyID || row.BuyerID != buyerID {
			continue
		}
		if latest == nil || row.ID > latest.ID {
			latest = row
		}
	}
	if latest == nil {
		return nil, errNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *fakeRepo) UpdateLocked(
	_ context.Context,
	id uint,
	mutate func(*models.Appointment) error,
) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, errNotFound
	}

	cp := *row
	if err := mutate(&cp); err != nil {
		return nil, err
	}
	r.rows[id] = &cp

	out := cp
	return &out, nil
}

func (r *fakeRepo) List(_ context.Context, filter domain.ListFilter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, row := range r.rows {
		if filter.PropertyID != 0 && row.PropertyID != filter.PropertyID {
			continue
		}
		if filter.BuyerID != 0 && row.BuyerID != filter.BuyerID {
			continue
		}
		if filter.Status != "" && row.Status != filter.Status {
			continue
		}
		out = append(out, *row)
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

type noopSink struct{}

func (noopSink) Record(uint, *uint, string, string, *uint, any) error { return nil }

// ======================================================
// Fixture
// ======================================================

const (
	sellerID = uint(1)
	buyerID  = uint(2)
	propID   = uint(10)
)

func liveProgress(propertyID uint) *models.ListingProgress {
	return &models.ListingProgress{
		PropertyID:               propertyID,
		BasicInfoStatus:          listing.StatusCompleted,
		LegalDocumentsStatus:     listing.StatusCompleted,
		PlatformReviewStatus:     listing.StatusCompleted,
		PlatformAssignmentStatus: listing.StatusCompleted,
		ListingStatus:            listing.StatusCompleted,
	}
}

type fixture struct {
	repo *fakeRepo

	request  *usecase.RequestVisit
	respond  *usecase.RespondToVisit
	cancel   *usecase.CancelVisit
	complete *usecase.CompleteVisit
	restore  *usecase.RestoreVisit
	list     *usecase.ListVisits
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := newFakeRepo()
	repo.props[propID] = &models.Property{
		ID:      propID,
		OwnerID: sellerID,
		Type:    models.PropertyApartment,
		Title:   "Flat near the metro",
	}
	repo.progress[propID] = liveProgress(propID)
	repo.settings[propID] = &models.VisitSettings{
		PropertyID:     propID,
		PresenceType:   models.PresencePlatformOnly,
		SchedulingType: models.SchedulingBuyerProposal,
	}

	d := events.NewDispatcher(noopSink{})

	return &fixture{
		repo:     repo,
		request:  usecase.NewRequestVisit(repo, d),
		respond:  usecase.NewRespondToVisit(repo, d),
		cancel:   usecase.NewCancelVisit(repo, d),
		complete: usecase.NewCompleteVisit(repo, d),
		restore:  usecase.NewRestoreVisit(repo, d),
		list:     usecase.NewListVisits(repo),
	}
}

func futureDate() time.Time {
	return time.Now().Add(72 * time.Hour)
}

func (f *fixture) mustRequest(t *testing.T, date time.Time) *models.Appointment {
	t.Helper()
	ap, err := f.request.Execute(context.Background(), usecase.RequestVisitInput{
		PropertyID: propID,
		BuyerID:    buyerID,
		Date:       date,
	})
	if err != nil {
		t.Fatalf("request visit: %v", err)
	}
	return ap
}

// ======================================================
// Request
// ======================================================

func TestRequestVisit(t *testing.T) {
	f := newFixture(t)

	ap := f.mustRequest(t, futureDate())
	if ap.ID == 0 {
		t.Fatal("appointment not persisted")
	}
	if ap.Status != string(domain.StatusPending) {
		t.Fatalf("status = %s, want pending", ap.Status)
	}
}

func TestRequestVisit_PairConflict(t *testing.T) {
	f := newFixture(t)
	f.mustRequest(t, futureDate())

	_, err := f.request.Execute(context.Background(), usecase.RequestVisitInput{
		PropertyID: propID,
		BuyerID:    buyerID,
		Date:       futureDate().Add(24 * time.Hour),
	})
	if !httperr.IsBusiness(err, httperr.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRequestVisit_OwnerCannotRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.request.Execute(context.Background(), usecase.RequestVisitInput{
		PropertyID: propID,
		BuyerID:    sellerID,
		Date:       futureDate(),
	})
	if !httperr.IsBusiness(err, httperr.CodeOwnerConflict) {
		t.Fatalf("expected owner_conflict, got %v", err)
	}
}

func TestRequestVisit_UnpublishedProperty(t *testing.T) {
	f := newFixture(t)
	f.repo.progress[propID].ListingStatus = listing.StatusPending

	_, err := f.request.Execute(context.Background(), usecase.RequestVisitInput{
		PropertyID: propID,
		BuyerID:    buyerID,
		Date:       futureDate(),
	})
	if !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("expected validation_error, got %v", err)
	}
}

func TestRequestVisit_PastDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.request.Execute(context.Background(), usecase.RequestVisitInput{
		PropertyID: propID,
		BuyerID:    buyerID,
		Date:       time.Now().Add(-time.Hour),
	})
	if !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("expected validation_error, got %v", err)
	}
}

func TestRequestVisit_SlotScheduling(t *testing.T) {
	f := newFixture(t)
	f.repo.settings[propID] = &models.VisitSettings{
		PropertyID:     propID,
		PresenceType:   models.PresencePlatformOnly,
		SchedulingType: models.SchedulingSellerAvailability,
		Days:           []time.Weekday{time.Monday},
		TimeSlots:      []string{"10:00"},
	}

	slots := visit.GenerateSlots(f.repo.settings[propID], time.Now())
	if len(slots) == 0 {
		t.Fatal("no slots generated")
	}

	// A future date off the published slots is not enough under slot scheduling.
	_, err := f.request.Execute(context.Background(), usecase.RequestVisitInput{
		PropertyID: propID,
		BuyerID:    buyerID,
		Date:       slots[0].Add(30 * time.Minute),
	})
	if !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("expected validation_error for off-slot date, got %v", err)
	}

	f.mustRequest(t, slots[0])
}

func TestRequestVisit_UnknownProperty(t *testing.T) {
	f := newFixture(t)

	_, err := f.request.Execute(context.Background(), usecase.RequestVisitInput{
		PropertyID: 999,
		BuyerID:    buyerID,
		Date:       futureDate(),
	})
	if !httperr.IsBusiness(err, httperr.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

// ======================================================
// Respond / Cancel / Complete
// ======================================================

func TestRespondToVisit(t *testing.T) {
	f := newFixture(t)
	ap := f.mustRequest(t, futureDate())

	got, err := f.respond.Execute(context.Background(), sellerID, ap.ID, usecase.DecisionAccept)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if got.Status != string(domain.StatusAccepted) {
		t.Fatalf("status = %s, want accepted", got.Status)
	}

	// Already answered.
	_, err = f.respond.Execute(context.Background(), sellerID, ap.ID, usecase.DecisionReject)
	if !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
		t.Fatalf("expected invalid_transition, got %v", err)
	}
}

func TestRespondToVisit_WrongSeller(t *testing.T) {
	f := newFixture(t)
	ap := f.mustRequest(t, futureDate())

	_, err := f.respond.Execute(context.Background(), sellerID+100, ap.ID, usecase.DecisionAccept)
	if !httperr.IsBusiness(err, httperr.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestCancelVisit_FreesPair(t *testing.T) {
	f := newFixture(t)
	ap := f.mustRequest(t, futureDate())

	got, err := f.cancel.Execute(context.Background(), buyerID, ap.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got.Status != string(domain.StatusCancelled) {
		t.Fatalf("status = %s, want cancelled", got.Status)
	}

	// The pair is free again.
	f.mustRequest(t, futureDate().Add(24*time.Hour))
}

func TestCancelVisit_OnlyOwnAppointment(t *testing.T) {
	f := newFixture(t)
	ap := f.mustRequest(t, futureDate())

	_, err := f.cancel.Execute(context.Background(), buyerID+100, ap.ID)
	if !httperr.IsBusiness(err, httperr.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestCompleteVisit(t *testing.T) {
	f := newFixture(t)
	ap := f.mustRequest(t, futureDate())

	if _, err := f.respond.Execute(context.Background(), sellerID, ap.ID, usecase.DecisionAccept); err != nil {
		t.Fatalf("accept: %v", err)
	}

	got, err := f.complete.Execute(context.Background(), sellerID, ap.ID, domain.OutcomeNewAppointment)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got.Status != string(domain.StatusCompleted) || got.Outcome != string(domain.OutcomeNewAppointment) {
		t.Fatalf("status=%s outcome=%s", got.Status, got.Outcome)
	}

	// Completion frees the pair for the follow-up visit.
	f.mustRequest(t, futureDate().Add(24*time.Hour))
}

func TestCompleteVisit_Guards(t *testing.T) {
	f := newFixture(t)
	ap := f.mustRequest(t, futureDate())

	if _, err := f.complete.Execute(context.Background(), sellerID, ap.ID, "ghosted"); !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("bad outcome: got %v", err)
	}

	// Still pending, not accepted.
	if _, err := f.complete.Execute(context.Background(), sellerID, ap.ID, domain.OutcomeProceed); !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
		t.Fatalf("complete pending: got %v", err)
	}
}

// ======================================================
// Restore
// ======================================================

func TestRestoreVisit_AfterRejection(t *testing.T) {
	f := newFixture(t)
	date := futureDate()
	ap := f.mustRequest(t, date)

	if _, err := f.respond.Execute(context.Background(), sellerID, ap.ID, usecase.DecisionReject); err != nil {
		t.Fatalf("reject: %v", err)
	}

	restored, err := f.restore.Execute(context.Background(), usecase.RestoreVisitInput{
		PropertyID: propID,
		BuyerID:    buyerID,
	})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.Status != string(domain.StatusPending) {
		t.Fatalf("status = %s, want pending", restored.Status)
	}
	if !restored.Date.Equal(date) {
		t.Fatalf("date = %v, want original %v", restored.Date, date)
	}
	if restored.RestoredFromID == nil || *restored.RestoredFromID != ap.ID {
		t.Fatalf("restoredFromID = %v, want %d", restored.RestoredFromID, ap.ID)
	}
}

func TestRestoreVisit_NewDate(t *testing.T) {
	f := newFixture(t)
	ap := f.mustRequest(t, futureDate())

	if _, err := f.cancel.Execute(context.Background(), buyerID, ap.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	newDate := futureDate().Add(48 * time.Hour)
	restored, err := f.restore.Execute(context.Background(), usecase.RestoreVisitInput{
		PropertyID: propID,
		BuyerID:    buyerID,
		Date:       newDate,
	})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !restored.Date.Equal(newDate) {
		t.Fatalf("date = %v, want %v", restored.Date, newDate)
	}
}

func TestRestoreVisit_ActiveLatest(t *testing.T) {
	f := newFixture(t)
	f.mustRequest(t, futureDate())

	_, err := f.restore.Execute(context.Background(), usecase.RestoreVisitInput{
		PropertyID: propID,
		BuyerID:    buyerID,
	})
	if !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
		t.Fatalf("expected invalid_transition, got %v", err)
	}
}

func TestRestoreVisit_NoHistory(t *testing.T) {
	f := newFixture(t)

	_, err := f.restore.Execute(context.Background(), usecase.RestoreVisitInput{
		PropertyID: propID,
		BuyerID:    buyerID,
	})
	if !httperr.IsBusiness(err, httperr.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

// ======================================================
// List
// ======================================================

func TestListVisits(t *testing.T) {
	f := newFixture(t)
	ap := f.mustRequest(t, futureDate())

	out, err := f.list.Execute(context.Background(), domain.ListFilter{BuyerID: buyerID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d rows, want 1", len(out))
	}
	if out[0].ID != ap.ID || out[0].PropertyID != propID || out[0].Status != string(domain.StatusPending) {
		t.Fatalf("row = %+v", out[0])
	}

	out, err = f.list.Execute(context.Background(), domain.ListFilter{BuyerID: buyerID + 1})
	if err != nil {
		t.Fatalf("list other buyer: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("got %d rows, want 0", len(out))
	}
}
