package appointment

import "github.com/HestiaEstates/listing-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Outcome is recorded on completion only.
type Outcome string

const (
	OutcomeProceed        Outcome = "proceed"
	OutcomeNotInterested  Outcome = "not_interested"
	OutcomeNewAppointment Outcome = "new_appointment"
	OutcomeNoShow         Outcome = "no_show"
)

func ValidOutcome(o Outcome) bool {
	switch o {
	case OutcomeProceed, OutcomeNotInterested, OutcomeNewAppointment, OutcomeNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether a status frees the (property, buyer) pair.
func IsTerminal(s Status) bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsActive is the non-terminal invariant side: at most one active appointment
// may exist per (property, buyer) pair.
func IsActive(s Status) bool {
	return s == StatusPending || s == StatusAccepted
}

// ===============================
// Transition guards
// ===============================

// CanRespond: seller accept/reject is only valid while pending.
func CanRespond(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusinessf(
			httperr.CodeInvalidTransition,
			"appointment in status %q cannot be responded to", current,
		)
	}
	return nil
}

// CanCancel: a buyer may withdraw before or after acceptance.
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusAccepted {
		return httperr.ErrBusinessf(
			httperr.CodeInvalidTransition,
			"appointment in status %q cannot be cancelled", current,
		)
	}
	return nil
}

// CanComplete: only an accepted visit can be closed with an outcome.
func CanComplete(current Status) error {
	if current != StatusAccepted {
		return httperr.ErrBusinessf(
			httperr.CodeInvalidTransition,
			"appointment in status %q cannot be completed", current,
		)
	}
	return nil
}

// CanRestore: a fresh pending appointment may be recreated from the pair's
// most recent appointment when that one was cancelled or rejected.
func CanRestore(latest Status) error {
	if latest != StatusCancelled && latest != StatusRejected {
		return httperr.ErrBusinessf(
			httperr.CodeInvalidTransition,
			"appointment in status %q cannot be restored", latest,
		)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
