package service

import (
	"context"
	"time"

	"meeting-optimizer-api/core/constants"
	"meeting-optimizer-api/core/logger"
	"meeting-optimizer-api/modules/availability/entity"
)

const externalAttendeeNote = "external attendee: limited calendar access"

// ScheduleInfo is one attendee's raw free/busy data returned by the
// schedule lookup collaborator.
type ScheduleInfo struct {
	Email            string
	AvailabilityView string
	Error            string
}

// ScheduleLookupFunc is the batched free/busy provider. It must accept up to
// constants.ScheduleBatchSize emails per call.
type ScheduleLookupFunc func(ctx context.Context, emails []string, window entity.TimeWindow, intervalMinutes int) ([]ScheduleInfo, error)

// Aggregator collects per-attendee availability records. Internal attendees
// are resolved through a single batched lookup call; external attendees are
// marked unknown without any network traffic.
type Aggregator struct {
	IntervalMinutes int
	BatchSize       int
	LookupTimeout   time.Duration
}

func NewAggregator(lookupTimeout time.Duration) *Aggregator {
	if lookupTimeout <= 0 {
		lookupTimeout = 15 * time.Second
	}
	return &Aggregator{
		IntervalMinutes: constants.AvailabilityViewInterval,
		BatchSize:       constants.ScheduleBatchSize,
		LookupTimeout:   lookupTimeout,
	}
}

// Aggregate returns one AttendeeAvailability per requested attendee,
// internal attendees first. A failed or timed-out lookup degrades the whole
// batch to unknown status with an error note; it never fails the request.
/// Unknown is not free: scoring decides separately how to treat it.
func (a *Aggregator) Aggregate(ctx context.Context, internal, external []string, window entity.TimeWindow, lookup ScheduleLookupFunc) []entity.AttendeeAvailability {
	records := make([]entity.AttendeeAvailability, 0, len(internal)+len(external))

	batch := internal
	if len(batch) > a.BatchSize {
		// Attendees beyond the batch cap are excluded from the lookup call
		// to respect upstream rate limits. They still appear in the result
		// with unknown status.
		logger.Warn("Aggregator:BatchCapExceeded", "internal", len(internal), "cap", a.BatchSize)
		batch = batch[:a.BatchSize]
	}

	var schedules map[string]ScheduleInfo
	var lookupErr error

	if len(batch) > 0 {
		lookupCtx, cancel := context.WithTimeout(ctx, a.LookupTimeout)
		defer cancel()

		results, err := lookup(lookupCtx, batch, window, a.IntervalMinutes)
		if err != nil {
			logger.Error("Aggregator:ScheduleLookup:Failed", "attendees", len(batch), "error", err)
			lookupErr = err
		} else {
			schedules = make(map[string]ScheduleInfo, len(results))
			for _, s := range results {
				schedules[s.Email] = s
			}
		}
	}

	for i, email := range internal {
		record := entity.AttendeeAvailability{
			Email:          email,
			DisplayName:    email,
			DominantStatus: entity.StatusUnknown,
		}

		switch {
		case i >= a.BatchSize:
			// excluded from the lookup; no error note, documented limitation
		case lookupErr != nil:
			record.ErrorNote = "calendar lookup failed: " + lookupErr.Error()
		default:
			info, ok := schedules[email]
			if !ok {
				record.ErrorNote = "no schedule data returned"
			} else if info.Error != "" {
				record.ErrorNote = info.Error
			} else {
				record.BusyIntervals, record.DominantStatus = DecodeAvailabilityView(info.AvailabilityView, window.Start, a.IntervalMinutes)
			}
		}

		records = append(records, record)
	}

	for _, email := range external {
		records = append(records, entity.AttendeeAvailability{
			Email:          email,
			DisplayName:    email,
			IsExternal:     true,
			DominantStatus: entity.StatusUnknown,
			ErrorNote:      externalAttendeeNote,
		})
	}

	return records
}
