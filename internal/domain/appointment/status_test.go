package appointment_test

import (
	"testing"
	"time"

	"github.com/HestiaEstates/listing-api/internal/domain/appointment"
	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/models"
)

var now = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func pendingAppointment() *models.Appointment {
	return &models.Appointment{
		ID:         1,
		PropertyID: 10,
		BuyerID:    20,
		Date:       now.Add(48 * time.Hour),
		Status:     string(appointment.StatusPending),
	}
}

func TestAcceptThenComplete(t *testing.T) {
	ap := pendingAppointment()

	if err := appointment.Accept(ap, now); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if ap.Status != string(appointment.StatusAccepted) || ap.RespondedAt == nil {
		t.Fatalf("after accept: status=%s respondedAt=%v", ap.Status, ap.RespondedAt)
	}

	if err := appointment.Complete(ap, appointment.OutcomeProceed, now); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if ap.Status != string(appointment.StatusCompleted) || ap.Outcome != string(appointment.OutcomeProceed) {
		t.Fatalf("after complete: status=%s outcome=%s", ap.Status, ap.Outcome)
	}
	if ap.CompletedAt == nil {
		t.Fatal("completedAt not set")
	}
}

func TestRespondOnlyWhilePending(t *testing.T) {
	ap := pendingAppointment()
	if err := appointment.Accept(ap, now); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if err := appointment.Reject(ap, now); !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
		t.Fatalf("reject after accept: got %v", err)
	}
	if err := appointment.Accept(ap, now); !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
		t.Fatalf("double accept: got %v", err)
	}
}

func TestCancelFromPendingAndAccepted(t *testing.T) {
	ap := pendingAppointment()
	if err := appointment.Cancel(ap, now); err != nil {
		t.Fatalf("cancel pending: %v", err)
	}
	if ap.Status != string(appointment.StatusCancelled) || ap.CancelledAt == nil {
		t.Fatalf("after cancel: status=%s cancelledAt=%v", ap.Status, ap.CancelledAt)
	}

	ap = pendingAppointment()
	if err := appointment.Accept(ap, now); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := appointment.Cancel(ap, now); err != nil {
		t.Fatalf("cancel accepted: %v", err)
	}

	if err := appointment.Cancel(ap, now); !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
		t.Fatalf("double cancel: got %v", err)
	}
}

func TestCompleteRequiresAccepted(t *testing.T) {
	ap := pendingAppointment()
	if err := appointment.Complete(ap, appointment.OutcomeNoShow, now); !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
		t.Fatalf("complete pending: got %v", err)
	}
}

func TestCanRestore(t *testing.T) {
	if err := appointment.CanRestore(appointment.StatusCancelled); err != nil {
		t.Fatalf("restore from cancelled: %v", err)
	}
	if err := appointment.CanRestore(appointment.StatusRejected); err != nil {
		t.Fatalf("restore from rejected: %v", err)
	}
	for _, s := range []appointment.Status{
		appointment.StatusPending,
		appointment.StatusAccepted,
		appointment.StatusCompleted,
	} {
		if err := appointment.CanRestore(s); !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
			t.Fatalf("restore from %s: got %v", s, err)
		}
	}
}

func TestStatusClassification(t *testing.T) {
	for _, s := range []appointment.Status{appointment.StatusPending, appointment.StatusAccepted} {
		if !appointment.IsActive(s) || appointment.IsTerminal(s) {
			t.Fatalf("%s should be active and non-terminal", s)
		}
	}
	for _, s := range []appointment.Status{
		appointment.StatusRejected,
		appointment.StatusCancelled,
		appointment.StatusCompleted,
	} {
		if appointment.IsActive(s) || !appointment.IsTerminal(s) {
			t.Fatalf("%s should be terminal and inactive", s)
		}
	}
}

func TestValidOutcome(t *testing.T) {
	for _, o := range []appointment.Outcome{
		appointment.OutcomeProceed,
		appointment.OutcomeNotInterested,
		appointment.OutcomeNewAppointment,
		appointment.OutcomeNoShow,
	} {
		if !appointment.ValidOutcome(o) {
			t.Fatalf("%s should be valid", o)
		}
	}
	if appointment.ValidOutcome("ghosted") {
		t.Fatal("ghosted should be rejected")
	}
}
