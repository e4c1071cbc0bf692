package appointment

import (
	"time"

	"github.com/HestiaEstates/listing-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Accept(ap *models.Appointment, now time.Time) error {
	if err := CanRespond(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusAccepted)
	ap.RespondedAt = &now
	return nil
}

func Reject(ap *models.Appointment, now time.Time) error {
	if err := CanRespond(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusRejected)
	ap.RespondedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, outcome Outcome, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.Outcome = string(outcome)
	ap.CompletedAt = &now
	return nil
}
