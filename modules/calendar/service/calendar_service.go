package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"meeting-optimizer-api/core/constants"
	"meeting-optimizer-api/core/errors"
	"meeting-optimizer-api/core/logger"
	availEntity "meeting-optimizer-api/modules/availability/entity"
	availService "meeting-optimizer-api/modules/availability/service"
	"meeting-optimizer-api/modules/calendar/dto"
)

const graphDateTimeFormat = "2006-01-02T15:04:05"

// CalendarService proxies calendar queries to Microsoft Graph on behalf of
// the signed-in user.
type CalendarService interface {
	GetCalendarView(ctx context.Context, accessToken string, start, end time.Time) (*dto.CalendarEventsResponse, error)
	GetSchedules(ctx context.Context, accessToken string, emails []string, window availEntity.TimeWindow, intervalMinutes int) ([]availService.ScheduleInfo, error)
	ScheduleLookup(accessToken string) availService.ScheduleLookupFunc
}

type calendarService struct {
	baseURL string
	client  *http.Client
}

func NewCalendarService() CalendarService {
	return &calendarService{
		baseURL: constants.GraphBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// NewCalendarServiceWithBaseURL is used by tests to point at a stub server
func NewCalendarServiceWithBaseURL(baseURL string, client *http.Client) CalendarService {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &calendarService{baseURL: baseURL, client: client}
}

// GetCalendarView fetches the user's calendar events in [start, end)
func (s *calendarService) GetCalendarView(ctx context.Context, accessToken string, start, end time.Time) (*dto.CalendarEventsResponse, error) {
	q := url.Values{}
	q.Set("startDateTime", start.UTC().Format(time.RFC3339))
	q.Set("endDateTime", end.UTC().Format(time.RFC3339))
	q.Set("$orderby", "start/dateTime")
	q.Set("$top", "100")

	endpoint := s.baseURL + "/me/calendarview?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Prefer", `outlook.timezone="UTC"`)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGraphAPIError, "calendarview request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.NewAppError(errors.ErrGraphAPIError,
			fmt.Sprintf("calendarview failed with status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var result struct {
		Value []struct {
			ID      string            `json:"id"`
			Subject string            `json:"subject"`
			Start   dto.EventDateTime `json:"start"`
			End     dto.EventDateTime `json:"end"`
			ShowAs  string            `json:"showAs"`
			IsAll   bool              `json:"isAllDay"`
			Loc     struct {
				DisplayName string `json:"displayName"`
			} `json:"location"`
			Organizer struct {
				EmailAddress struct {
					Address string `json:"address"`
				} `json:"emailAddress"`
			} `json:"organizer"`
		} `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.NewAppError(errors.ErrGraphAPIError, "failed to decode calendarview response", err)
	}

	events := make([]dto.CalendarEvent, 0, len(result.Value))
	for _, v := range result.Value {
		events = append(events, dto.CalendarEvent{
			ID:        v.ID,
			Subject:   v.Subject,
			Start:     v.Start,
			End:       v.End,
			Location:  v.Loc.DisplayName,
			Organizer: v.Organizer.EmailAddress.Address,
			IsAllDay:  v.IsAll,
			ShowAs:    v.ShowAs,
		})
	}

	return &dto.CalendarEventsResponse{Events: events, Count: len(events)}, nil
}

// GetSchedules calls Graph getSchedule for a batch of attendee emails and
// returns the raw availability views. One network call per batch.
func (s *calendarService) GetSchedules(ctx context.Context, accessToken string, emails []string, window availEntity.TimeWindow, intervalMinutes int) ([]availService.ScheduleInfo, error) {
	body := map[string]any{
		"schedules":                emails,
		"startTime":                map[string]string{"dateTime": window.Start.Format(graphDateTimeFormat), "timeZone": window.TimeZone},
		"endTime":                  map[string]string{"dateTime": window.End.Format(graphDateTimeFormat), "timeZone": window.TimeZone},
		"availabilityViewInterval": intervalMinutes,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/me/calendar/getSchedule", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", fmt.Sprintf("outlook.timezone=%q", window.TimeZone))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getSchedule request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("getSchedule failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Value []struct {
			ScheduleID       string `json:"scheduleId"`
			AvailabilityView string `json:"availabilityView"`
			Error            *struct {
				Message string `json:"message"`
			} `json:"error"`
		} `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode getSchedule response: %w", err)
	}

	schedules := make([]availService.ScheduleInfo, 0, len(result.Value))
	for _, v := range result.Value {
		info := availService.ScheduleInfo{
			Email:            v.ScheduleID,
			AvailabilityView: v.AvailabilityView,
		}
		if v.Error != nil {
			info.Error = v.Error.Message
		}
		schedules = append(schedules, info)
	}

	logger.Info("Calendar:GetSchedules", "requested", len(emails), "returned", len(schedules))
	return schedules, nil
}

// ScheduleLookup binds an access token into the lookup shape consumed by the
// availability aggregator.
func (s *calendarService) ScheduleLookup(accessToken string) availService.ScheduleLookupFunc {
	return func(ctx context.Context, emails []string, window availEntity.TimeWindow, intervalMinutes int) ([]availService.ScheduleInfo, error) {
		return s.GetSchedules(ctx, accessToken, emails, window, intervalMinutes)
	}
}
