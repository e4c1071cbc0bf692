package listing

import (
	"github.com/HestiaEstates/listing-api/internal/models"
)

// ===============================
// Listing Stages
// ===============================

type Stage string

const (
	StageBasicInfo          Stage = "basic_info"
	StageLegalDocuments     Stage = "legal_documents"
	StagePlatformReview     Stage = "platform_review"
	StagePlatformAssignment Stage = "platform_assignment"
	StageListing            Stage = "listing"
)

// StageOrder is the total order a property moves through before going live.
var StageOrder = []Stage{
	StageBasicInfo,
	StageLegalDocuments,
	StagePlatformReview,
	StagePlatformAssignment,
	StageListing,
}

// ===============================
// Stage Statuses
// ===============================

const (
	StatusPending       = "pending"
	StatusInProgress    = "in_progress"
	StatusLawyerPending = "lawyer_pending"
	StatusCompleted     = "completed"
	StatusRejected      = "rejected"
)

type Result string

const (
	ResultCompleted Result = "completed"
	ResultRejected  Result = "rejected"
)

func ValidStage(s Stage) bool {
	for _, st := range StageOrder {
		if st == s {
			return true
		}
	}
	return false
}

// StatusOf reads the status field backing a stage.
func StatusOf(p *models.ListingProgress, s Stage) string {
	switch s {
	case StageBasicInfo:
		return p.BasicInfoStatus
	case StageLegalDocuments:
		return p.LegalDocumentsStatus
	case StagePlatformReview:
		return p.PlatformReviewStatus
	case StagePlatformAssignment:
		return p.PlatformAssignmentStatus
	case StageListing:
		return p.ListingStatus
	}
	return ""
}

func setStatus(p *models.ListingProgress, s Stage, status string) {
	switch s {
	case StageBasicInfo:
		p.BasicInfoStatus = status
	case StageLegalDocuments:
		p.LegalDocumentsStatus = status
	case StagePlatformReview:
		p.PlatformReviewStatus = status
	case StagePlatformAssignment:
		p.PlatformAssignmentStatus = status
	case StageListing:
		p.ListingStatus = status
	}
}

// CurrentStage returns the first stage that is not completed. live is true
// when every stage, including listing, is completed and the property is
// publicly visible.
func CurrentStage(p *models.ListingProgress) (current Stage, live bool) {
	for _, s := range StageOrder {
		if StatusOf(p, s) != StatusCompleted {
			return s, false
		}
	}
	return StageListing, true
}
