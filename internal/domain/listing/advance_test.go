package listing_test

import (
	"testing"

	"github.com/HestiaEstates/listing-api/internal/domain/listing"
	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/models"
)

func freshProgress() *models.ListingProgress {
	return &models.ListingProgress{
		BasicInfoStatus:          listing.StatusPending,
		LegalDocumentsStatus:     listing.StatusPending,
		PlatformReviewStatus:     listing.StatusPending,
		PlatformAssignmentStatus: listing.StatusPending,
		ListingStatus:            listing.StatusPending,
	}
}

func mustAdvance(t *testing.T, p *models.ListingProgress, stage listing.Stage) {
	t.Helper()
	changed, err := listing.Advance(p, stage, listing.ResultCompleted, "", false)
	if err != nil {
		t.Fatalf("advance %s: %v", stage, err)
	}
	if !changed {
		t.Fatalf("advance %s: expected a genuine transition", stage)
	}
}

func TestAdvance_PrerequisiteEnforced(t *testing.T) {
	p := freshProgress()

	_, err := listing.Advance(p, listing.StageLegalDocuments, listing.ResultCompleted, "", false)
	if !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
		t.Fatalf("expected invalid_transition, got %v", err)
	}

	_, err = listing.Advance(p, listing.StageListing, listing.ResultCompleted, "", false)
	if !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
		t.Fatalf("expected invalid_transition for listing, got %v", err)
	}
}

func TestAdvance_FullWalk(t *testing.T) {
	p := freshProgress()

	for _, stage := range listing.StageOrder {
		current, live := listing.CurrentStage(p)
		if live {
			t.Fatalf("live before stage %s", stage)
		}
		if current != stage {
			t.Fatalf("current stage = %s, want %s", current, stage)
		}
		mustAdvance(t, p, stage)
	}

	if _, live := listing.CurrentStage(p); !live {
		t.Fatal("expected live after completing every stage")
	}
}

func TestAdvance_IdempotentReAdvance(t *testing.T) {
	p := freshProgress()
	mustAdvance(t, p, listing.StageBasicInfo)

	changed, err := listing.Advance(p, listing.StageBasicInfo, listing.ResultCompleted, "", false)
	if err != nil {
		t.Fatalf("re-advance: %v", err)
	}
	if changed {
		t.Fatal("re-advancing a completed stage must not report a transition")
	}
	if p.BasicInfoStatus != listing.StatusCompleted {
		t.Fatalf("basic info status = %s", p.BasicInfoStatus)
	}
}

func TestAdvance_UnknownStageAndResult(t *testing.T) {
	p := freshProgress()

	if _, err := listing.Advance(p, "garage", listing.ResultCompleted, "", false); !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("unknown stage: got %v", err)
	}

	if _, err := listing.Advance(p, listing.StageBasicInfo, "paused", "", false); !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("unknown result: got %v", err)
	}

	if _, err := listing.Advance(p, listing.StageBasicInfo, listing.ResultRejected, "", false); !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("rejected outside review: got %v", err)
	}
}

func TestAdvance_ReviewRejection(t *testing.T) {
	p := freshProgress()
	mustAdvance(t, p, listing.StageBasicInfo)
	mustAdvance(t, p, listing.StageLegalDocuments)

	changed, err := listing.Advance(p, listing.StagePlatformReview, listing.ResultRejected, "missing permit page", false)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if !changed {
		t.Fatal("rejection is a genuine transition")
	}

	if p.PlatformReviewStatus != listing.StatusRejected {
		t.Fatalf("review status = %s", p.PlatformReviewStatus)
	}
	if p.ReviewComment != "missing permit page" {
		t.Fatalf("review comment = %q", p.ReviewComment)
	}
	if p.LegalDocumentsStatus != listing.StatusInProgress {
		t.Fatalf("legal status = %s, want in_progress", p.LegalDocumentsStatus)
	}
	if p.BasicInfoStatus != listing.StatusCompleted {
		t.Fatal("rejection must not touch basic info")
	}

	// The seller is sent back to the documents stage.
	if current, _ := listing.CurrentStage(p); current != listing.StageLegalDocuments {
		t.Fatalf("current stage after rejection = %s", current)
	}
}

func TestAdvance_ReviewRejection_LawyerPath(t *testing.T) {
	p := freshProgress()
	mustAdvance(t, p, listing.StageBasicInfo)
	mustAdvance(t, p, listing.StageLegalDocuments)

	if _, err := listing.Advance(p, listing.StagePlatformReview, listing.ResultRejected, "", true); err != nil {
		t.Fatalf("reject: %v", err)
	}

	if p.LegalDocumentsStatus != listing.StatusLawyerPending {
		t.Fatalf("legal status = %s, want lawyer_pending", p.LegalDocumentsStatus)
	}
}

func TestAdvance_ReviewAfterRejection(t *testing.T) {
	p := freshProgress()
	mustAdvance(t, p, listing.StageBasicInfo)
	mustAdvance(t, p, listing.StageLegalDocuments)

	if _, err := listing.Advance(p, listing.StagePlatformReview, listing.ResultRejected, "fix docs", false); err != nil {
		t.Fatalf("reject: %v", err)
	}

	// Resubmit documents, then the review runs again from rejected.
	mustAdvance(t, p, listing.StageLegalDocuments)

	changed, err := listing.Advance(p, listing.StagePlatformReview, listing.ResultCompleted, "", false)
	if err != nil {
		t.Fatalf("re-review: %v", err)
	}
	if !changed || p.PlatformReviewStatus != listing.StatusCompleted {
		t.Fatalf("review status = %s, changed = %v", p.PlatformReviewStatus, changed)
	}
}

func TestAdvance_RejectingCompletedReviewFails(t *testing.T) {
	p := freshProgress()
	mustAdvance(t, p, listing.StageBasicInfo)
	mustAdvance(t, p, listing.StageLegalDocuments)
	mustAdvance(t, p, listing.StagePlatformReview)

	_, err := listing.Advance(p, listing.StagePlatformReview, listing.ResultRejected, "", false)
	if !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
		t.Fatalf("expected invalid_transition, got %v", err)
	}
}
