package service

import (
	"time"

	"meeting-optimizer-api/modules/availability/entity"
)

// DecodeAvailabilityView converts a Graph availability view into busy
// intervals and a dominant status. Each character covers one sub-interval of
// intervalMinutes starting at viewStart; the view is scanned as a sequence of
// typed status codes rather than raw characters. One interval is emitted per
// non-free sub-interval, unmerged; the scorer's half-open overlap test is
// insensitive to merging.
//
// An empty view yields no intervals and dominant status unknown.
func DecodeAvailabilityView(view string, viewStart time.Time, intervalMinutes int) ([]entity.BusyInterval, entity.FreeBusyStatus) {
	if view == "" {
		return nil, entity.StatusUnknown
	}

	codes := make([]entity.FreeBusyStatus, len(view))
	for i := 0; i < len(view); i++ {
		codes[i] = entity.ParseStatusCode(view[i])
	}

	unit := time.Duration(intervalMinutes) * time.Minute
	var intervals []entity.BusyInterval

	// Dominant status is the left-to-right first code to reach the highest
	// occurrence count; strict > comparison makes ties deterministic.
	counts := make(map[entity.FreeBusyStatus]int, 6)
	dominant := entity.StatusUnknown
	best := 0

	for i, code := range codes {
		counts[code]++
		if counts[code] > best {
			best = counts[code]
			dominant = code
		}

		if !code.IsFree() {
			start := viewStart.Add(time.Duration(i) * unit)
			intervals = append(intervals, entity.BusyInterval{
				Start: start,
				End:   start.Add(unit),
			})
		}
	}

	return intervals, dominant
}
