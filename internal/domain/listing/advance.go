package listing

import (
	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/models"
)

// Advance applies one stage transition to a property's progress. It returns
// changed=false for idempotent re-advances (already-completed stage receiving
// a completing result), so callers can skip emitting a duplicate event.
//
// hasLawyer selects which status legal_documents falls back to when the
// platform review rejects the submission.
func Advance(
	p *models.ListingProgress,
	stage Stage,
	result Result,
	comment string,
	hasLawyer bool,
) (changed bool, err error) {

	if !ValidStage(stage) {
		return false, httperr.ErrBusinessf(httperr.CodeValidation, "unknown stage %q", stage)
	}

	if result != ResultCompleted && result != ResultRejected {
		return false, httperr.ErrBusinessf(httperr.CodeValidation, "unknown result %q", result)
	}

	if result == ResultRejected && stage != StagePlatformReview {
		return false, httperr.ErrBusinessf(
			httperr.CodeValidation,
			"result %q only applies to stage %q", ResultRejected, StagePlatformReview,
		)
	}

	// Every earlier stage must already be completed.
	for _, s := range StageOrder {
		if s == stage {
			break
		}
		if StatusOf(p, s) != StatusCompleted {
			return false, httperr.ErrBusinessf(
				httperr.CodeInvalidTransition,
				"stage %q requires %q to be completed first", stage, s,
			)
		}
	}

	current := StatusOf(p, stage)

	if current == StatusCompleted {
		if result == ResultCompleted {
			// Idempotent re-advance.
			return false, nil
		}
		return false, httperr.ErrBusinessf(
			httperr.CodeInvalidTransition,
			"stage %q is already completed", stage,
		)
	}

	switch stage {
	case StagePlatformReview:
		// Review may run from pending or again after a rejection.
		if current != StatusPending && current != StatusRejected {
			return false, httperr.ErrBusinessf(
				httperr.CodeInvalidTransition,
				"platform review cannot run from status %q", current,
			)
		}

		if result == ResultRejected {
			setStatus(p, StagePlatformReview, StatusRejected)
			p.ReviewComment = comment

			// Rejection sends the seller back to the documents stage; the
			// basic info stays completed.
			if hasLawyer {
				setStatus(p, StageLegalDocuments, StatusLawyerPending)
			} else {
				setStatus(p, StageLegalDocuments, StatusInProgress)
			}
			return true, nil
		}

		setStatus(p, StagePlatformReview, StatusCompleted)
		p.ReviewComment = comment
		return true, nil

	default:
		setStatus(p, stage, StatusCompleted)
		return true, nil
	}
}
