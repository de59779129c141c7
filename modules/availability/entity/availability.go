package entity

import "time"

// FreeBusyStatus is one occupancy code of a Microsoft Graph availability view
type FreeBusyStatus string

const (
	StatusFree             FreeBusyStatus = "free"
	StatusTentative        FreeBusyStatus = "tentative"
	StatusBusy             FreeBusyStatus = "busy"
	StatusOutOfOffice      FreeBusyStatus = "oof"
	StatusWorkingElsewhere FreeBusyStatus = "workingElsewhere"
	StatusUnknown          FreeBusyStatus = "unknown"
)

// ParseStatusCode maps one availability-view character to its status.
// Unrecognized codes map to unknown, which counts as non-free so that
// conflicts are never under-reported.
func ParseStatusCode(ch byte) FreeBusyStatus {
	switch ch {
	case '0':
		return StatusFree
	case '1':
		return StatusTentative
	case '2':
		return StatusBusy
	case '3':
		return StatusOutOfOffice
	case '4':
		return StatusWorkingElsewhere
	default:
		return StatusUnknown
	}
}

// IsFree reports whether the status represents open calendar time
func (s FreeBusyStatus) IsFree() bool {
	return s == StatusFree
}

// BusyInterval is a half-open [Start, End) span of occupied calendar time
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the interval intersects the half-open span
// [start, end).
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && b.End.After(start)
}

// AttendeeAvailability is the normalized availability record for one
// requested attendee. External attendees always carry unknown status and an
// empty interval list.
type AttendeeAvailability struct {
	Email          string         `json:"email"`
	DisplayName    string         `json:"displayName"`
	IsExternal     bool           `json:"isExternal"`
	DominantStatus FreeBusyStatus `json:"freeBusyViewType"`
	BusyIntervals  []BusyInterval `json:"freeBusyTimes"`
	ErrorNote      string         `json:"error,omitempty"`
}

// CandidateSlot is one fixed-duration meeting time under evaluation
type CandidateSlot struct {
	Start time.Time
	End   time.Time
}

// ScoredSlot is a candidate slot evaluated against all attendees
type ScoredSlot struct {
	Start              time.Time `json:"start"`
	End                time.Time `json:"end"`
	IsAvailable        bool      `json:"isAvailable"`
	ConflictCount      int       `json:"conflictCount"`
	AttendeesAvailable []string  `json:"attendeesAvailable"`
	AttendeesConflict  []string  `json:"attendeesConflict"`
	Confidence         int       `json:"confidence"`
}

// TimeWindow is the search range for a scheduling request
type TimeWindow struct {
	Start    time.Time
	End      time.Time
	TimeZone string
}
