package service

import (
	"sort"

	"meeting-optimizer-api/modules/availability/entity"
)

// RankSlots orders scored slots by confidence, highest first, and caps the
// result at maxResults. Slots conflicting with every attendee are dropped;
// a stable sort preserves chronological order among equal confidence.
func RankSlots(scored []entity.ScoredSlot, totalAttendees, maxResults int) []entity.ScoredSlot {
	ranked := make([]entity.ScoredSlot, 0, len(scored))
	for _, s := range scored {
		if s.ConflictCount < totalAttendees {
			ranked = append(ranked, s)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})

	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}
