package dto

// CalendarEvent is one calendarview entry proxied back to the add-in
type CalendarEvent struct {
	ID        string        `json:"id"`
	Subject   string        `json:"subject"`
	Start     EventDateTime `json:"start"`
	End       EventDateTime `json:"end"`
	Location  string        `json:"location,omitempty"`
	Organizer string        `json:"organizer,omitempty"`
	IsAllDay  bool          `json:"isAllDay"`
	ShowAs    string        `json:"showAs,omitempty"`
}

// EventDateTime mirrors the Graph event date/time shape
type EventDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// CalendarEventsResponse wraps the proxied calendarview result
type CalendarEventsResponse struct {
	Events []CalendarEvent `json:"events"`
	Count  int             `json:"count"`
}
