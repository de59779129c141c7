package dto

import "meeting-optimizer-api/modules/availability/entity"

// AvailabilityRequest is the body of POST /meetings/optimize. Field names
// match the add-in frontend's wire format.
type AvailabilityRequest struct {
	Attendees []string `json:"attendees"`
	StartTime string   `json:"startTime"` // RFC3339
	EndTime   string   `json:"endTime"`   // RFC3339
	Duration  int      `json:"duration"`  // minutes
	TimeZone  string   `json:"timeZone,omitempty"`
}

// TimeRange echoes the resolved search window back to the caller
type TimeRange struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	TimeZone string `json:"timeZone"`
}

// AvailabilityResponse is the full scheduling suggestion payload
type AvailabilityResponse struct {
	AttendeesAvailability []entity.AttendeeAvailability `json:"attendeesAvailability"`
	SuggestedSlots        []entity.ScoredSlot           `json:"suggestedSlots"`
	TimeRange             TimeRange                     `json:"timeRange"`
}
