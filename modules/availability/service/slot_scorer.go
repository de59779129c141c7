package service

import (
	"math"
	"time"

	"meeting-optimizer-api/modules/availability/entity"
)

// SlotScorer evaluates a candidate slot against all attendee records and
// produces a 0-100 confidence score.
//
// Attendees without busy intervals (external, or with failed lookups) can
// never register a conflict through the overlap test, so they land in the
// available set. TreatUnknownAsBusy switches to the stricter reading where
// unknown availability counts as a conflict.
type SlotScorer struct {
	PrimeHourStart     int
	PrimeHourEnd       int
	TreatUnknownAsBusy bool
}

func NewSlotScorer(treatUnknownAsBusy bool) *SlotScorer {
	return &SlotScorer{
		PrimeHourStart:     10,
		PrimeHourEnd:       16,
		TreatUnknownAsBusy: treatUnknownAsBusy,
	}
}

// Score partitions attendees into available and conflicting for the slot and
// derives the confidence score. Deterministic: no I/O, no randomness, no
// dependence on attendee ordering beyond the order of the output lists.
func (s *SlotScorer) Score(slot entity.CandidateSlot, attendees []entity.AttendeeAvailability, loc *time.Location) entity.ScoredSlot {
	available := make([]string, 0, len(attendees))
	conflicting := make([]string, 0)
	externalCount := 0

	for _, att := range attendees {
		if att.IsExternal {
			externalCount++
		}

		conflict := false
		for _, busy := range att.BusyIntervals {
			if busy.Overlaps(slot.Start, slot.End) {
				conflict = true
				break
			}
		}
		if !conflict && s.TreatUnknownAsBusy && att.DominantStatus == entity.StatusUnknown {
			conflict = true
		}

		if conflict {
			conflicting = append(conflicting, att.Email)
		} else {
			available = append(available, att.Email)
		}
	}

	total := len(attendees)
	conflictCount := len(conflicting)

	confidence := 0
	if total > 0 {
		confidence = int(math.Round(100 * float64(total-conflictCount) / float64(total)))
	}

	if externalCount > 0 && conflictCount == 0 {
		confidence += 10
	}
	if hour := slot.Start.In(loc).Hour(); hour >= s.PrimeHourStart && hour <= s.PrimeHourEnd {
		confidence += 5
	}
	if confidence > 100 {
		confidence = 100
	}

	return entity.ScoredSlot{
		Start:              slot.Start,
		End:                slot.End,
		IsAvailable:        conflictCount == 0,
		ConflictCount:      conflictCount,
		AttendeesAvailable: available,
		AttendeesConflict:  conflicting,
		Confidence:         confidence,
	}
}
