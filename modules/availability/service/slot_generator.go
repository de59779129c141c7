package service

import (
	"iter"
	"time"

	"meeting-optimizer-api/core/constants"
	"meeting-optimizer-api/modules/availability/entity"
)

// SlotGenerator produces candidate meeting slots on a fixed cadence inside
// business hours, Monday through Friday. Hour and weekday checks use the
// caller's location, not UTC.
type SlotGenerator struct {
	CadenceMinutes    int
	BusinessHourStart int
	BusinessHourEnd   int
}

func NewSlotGenerator() *SlotGenerator {
	return &SlotGenerator{
		CadenceMinutes:    constants.SlotCadenceMinutes,
		BusinessHourStart: constants.BusinessHourStart,
		BusinessHourEnd:   constants.BusinessHourEnd,
	}
}

// Slots returns a finite, restartable sequence of candidate slots. A cursor
// advances from windowStart in cadence steps; a slot is emitted when it fits
// inside the window, starts within business hours, and falls on a weekday.
// Weekend days are skipped to 09:00 of the next calendar day; out-of-hours
// cursors advance one cadence step at a time.
func (g *SlotGenerator) Slots(windowStart, windowEnd time.Time, durationMinutes int, loc *time.Location) iter.Seq[entity.CandidateSlot] {
	duration := time.Duration(durationMinutes) * time.Minute
	cadence := time.Duration(g.CadenceMinutes) * time.Minute

	return func(yield func(entity.CandidateSlot) bool) {
		cursor := windowStart

		for !cursor.Add(duration).After(windowEnd) {
			local := cursor.In(loc)

			if wd := local.Weekday(); wd == time.Saturday || wd == time.Sunday {
				cursor = time.Date(local.Year(), local.Month(), local.Day()+1,
					g.BusinessHourStart, 0, 0, 0, loc)
				continue
			}

			if hour := local.Hour(); hour < g.BusinessHourStart || hour >= g.BusinessHourEnd {
				cursor = cursor.Add(cadence)
				continue
			}

			if !yield(entity.CandidateSlot{Start: cursor, End: cursor.Add(duration)}) {
				return
			}
			cursor = cursor.Add(cadence)
		}
	}
}
