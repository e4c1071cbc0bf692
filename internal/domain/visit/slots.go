package visit

import (
	"sort"
	"time"

	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/models"
	"github.com/HestiaEstates/listing-api/internal/timezone"
)

// ValidateSettings enforces the shape rules for visit settings. Availability
// only has meaning under seller_availability; under buyer_proposal it is
// cleared rather than stored dormant.
func ValidateSettings(s *models.VisitSettings) error {
	switch s.PresenceType {
	case models.PresencePlatformOnly, models.PresenceSellerAndPlatform:
	default:
		return httperr.ErrBusinessf(httperr.CodeValidation, "unknown presence type %q", s.PresenceType)
	}

	switch s.SchedulingType {
	case models.SchedulingSellerAvailability:
		if len(s.Days) == 0 || len(s.TimeSlots) == 0 {
			return httperr.ErrBusiness(httperr.CodeValidation)
		}
		for _, d := range s.Days {
			if d < time.Sunday || d > time.Saturday {
				return httperr.ErrBusinessf(httperr.CodeValidation, "invalid weekday %d", d)
			}
		}
		for _, hm := range s.TimeSlots {
			if _, _, err := timezone.ParseClock(hm); err != nil {
				return httperr.ErrBusinessf(httperr.CodeValidation, "invalid time slot %q", hm)
			}
		}
	case models.SchedulingBuyerProposal:
		s.Days = nil
		s.TimeSlots = nil
	default:
		return httperr.ErrBusinessf(httperr.CodeValidation, "unknown scheduling type %q", s.SchedulingType)
	}

	return nil
}

// GenerateSlots turns recurring weekly availability into the next concrete
// bookable timestamp per (day, time) pair, sorted ascending. Every slot is
// >= now; a pair whose time already passed today rolls forward exactly seven
// days. Pairs that resolve to the same moment are kept as separate slots.
//
// Under buyer_proposal there is nothing to generate; buyers propose dates.
func GenerateSlots(s *models.VisitSettings, now time.Time) []time.Time {
	if s.SchedulingType != models.SchedulingSellerAvailability {
		return nil
	}

	slots := make([]time.Time, 0, len(s.Days)*len(s.TimeSlots))

	for _, day := range s.Days {
		for _, hm := range s.TimeSlots {
			slots = append(slots, nextOccurrence(now, day, hm))
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Before(slots[j])
	})

	return slots
}

// nextOccurrence finds the nearest timestamp >= now whose weekday and
// wall-clock time match the pair.
func nextOccurrence(now time.Time, day time.Weekday, hm string) time.Time {
	daysAhead := (int(day) - int(now.Weekday()) + 7) % 7

	candidate := timezone.OnDay(now.AddDate(0, 0, daysAhead), hm)

	if candidate.Before(now) {
		// Today's slot already passed.
		candidate = candidate.AddDate(0, 0, 7)
	}

	return candidate
}

// SlotMatches reports whether a concrete timestamp lands on one of the
// configured (day, time) pairs. Used to validate slot-based requests.
func SlotMatches(s *models.VisitSettings, at time.Time) bool {
	if s.SchedulingType != models.SchedulingSellerAvailability {
		return false
	}

	hm := at.Format("15:04")

	dayOK := false
	for _, d := range s.Days {
		if d == at.Weekday() {
			dayOK = true
			break
		}
	}
	if !dayOK {
		return false
	}

	for _, t := range s.TimeSlots {
		if t == hm {
			return true
		}
	}
	return false
}
