package service

import (
	"context"
	"time"

	"meeting-optimizer-api/core/config"
	"meeting-optimizer-api/core/constants"
	"meeting-optimizer-api/core/errors"
	"meeting-optimizer-api/core/logger"
	"meeting-optimizer-api/modules/availability/dto"
	"meeting-optimizer-api/modules/availability/entity"
)

// AvailabilityServiceInterface computes ranked meeting-slot suggestions
type AvailabilityServiceInterface interface {
	ComputeAvailability(ctx context.Context, req *dto.AvailabilityRequest, requesterDomain string, lookup ScheduleLookupFunc) (*dto.AvailabilityResponse, *errors.AppError)
}

// AvailabilityService wires the decode/classify/aggregate/generate/score/rank
// pipeline. All state is per-request; nothing is cached across calls.
type AvailabilityService struct {
	aggregator *Aggregator
	generator  *SlotGenerator
	scorer     *SlotScorer
	maxResults int
}

func NewAvailabilityService(cfg config.AvailabilityConfig) AvailabilityServiceInterface {
	return &AvailabilityService{
		aggregator: NewAggregator(time.Duration(cfg.LookupTimeoutSec) * time.Second),
		generator:  NewSlotGenerator(),
		scorer:     NewSlotScorer(cfg.TreatUnknownAsBusy),
		maxResults: constants.MaxSuggestedSlots,
	}
}

// ComputeAvailability validates the request, aggregates per-attendee
// free/busy data and returns the attendee records plus the ranked slots.
// Only validation failures abort; data-source failures degrade to unknown
// availability so a best-effort suggestion list is always returned.
func (s *AvailabilityService) ComputeAvailability(ctx context.Context, req *dto.AvailabilityRequest, requesterDomain string, lookup ScheduleLookupFunc) (*dto.AvailabilityResponse, *errors.AppError) {
	if len(req.Attendees) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "attendees must not be empty", nil)
	}
	if req.Duration < constants.MinDurationMinutes {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "duration must be at least 15 minutes", nil)
	}

	windowStart, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "startTime must be RFC3339", err)
	}
	windowEnd, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "endTime must be RFC3339", err)
	}
	if !windowStart.Before(windowEnd) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "startTime must be before endTime", nil)
	}

	timeZone := req.TimeZone
	if timeZone == "" {
		timeZone = "UTC"
	}
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "unrecognized timeZone", err)
	}

	window := entity.TimeWindow{Start: windowStart, End: windowEnd, TimeZone: timeZone}

	internal, external := SplitByDomain(requesterDomain, req.Attendees)
	logger.Info("Availability:Classified",
		"internal", len(internal),
		"external", len(external),
		"requester_domain", requesterDomain,
	)

	attendees := s.aggregator.Aggregate(ctx, internal, external, window, lookup)

	var scored []entity.ScoredSlot
	for slot := range s.generator.Slots(windowStart, windowEnd, req.Duration, loc) {
		scored = append(scored, s.scorer.Score(slot, attendees, loc))
	}

	suggested := RankSlots(scored, len(attendees), s.maxResults)

	logger.Info("Availability:Computed",
		"attendees", len(attendees),
		"candidates", len(scored),
		"suggested", len(suggested),
	)

	return &dto.AvailabilityResponse{
		AttendeesAvailability: attendees,
		SuggestedSlots:        suggested,
		TimeRange: dto.TimeRange{
			Start:    windowStart.Format(time.RFC3339),
			End:      windowEnd.Format(time.RFC3339),
			TimeZone: timeZone,
		},
	}, nil
}
