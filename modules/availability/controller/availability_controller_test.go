package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-optimizer-api/core/config"
	"meeting-optimizer-api/core/constants"
	"meeting-optimizer-api/core/errors"
	"meeting-optimizer-api/core/middleware"
	authDto "meeting-optimizer-api/modules/auth/dto"
	availService "meeting-optimizer-api/modules/availability/service"
	calendarDto "meeting-optimizer-api/modules/calendar/dto"
	availEntity "meeting-optimizer-api/modules/availability/entity"
	directoryDto "meeting-optimizer-api/modules/directory/dto"
	directoryEntity "meeting-optimizer-api/modules/directory/entity"
)

type fakeAuthService struct {
	token  string
	appErr *errors.AppError
}

func (f *fakeAuthService) ExchangeOnBehalfOf(ctx context.Context, claims *middleware.BootstrapClaims, bootstrapToken string, scopes []string) (*authDto.TokenResponse, *errors.AppError) {
	if f.appErr != nil {
		return nil, f.appErr
	}
	return &authDto.TokenResponse{AccessToken: f.token}, nil
}

type fakeCalendarService struct {
	schedules []availService.ScheduleInfo
}

func (f *fakeCalendarService) GetCalendarView(ctx context.Context, accessToken string, start, end time.Time) (*calendarDto.CalendarEventsResponse, error) {
	return &calendarDto.CalendarEventsResponse{}, nil
}

func (f *fakeCalendarService) GetSchedules(ctx context.Context, accessToken string, emails []string, window availEntity.TimeWindow, intervalMinutes int) ([]availService.ScheduleInfo, error) {
	return f.schedules, nil
}

func (f *fakeCalendarService) ScheduleLookup(accessToken string) availService.ScheduleLookupFunc {
	return func(ctx context.Context, emails []string, window availEntity.TimeWindow, intervalMinutes int) ([]availService.ScheduleInfo, error) {
		return f.schedules, nil
	}
}

type fakeDirectoryService struct {
	domain   string
	profiles map[string]directoryDto.GraphUser
}

func (f *fakeDirectoryService) GetMe(ctx context.Context, accessToken string) (*directoryDto.GraphUser, *errors.AppError) {
	return &directoryDto.GraphUser{Mail: "me@" + f.domain}, nil
}

func (f *fakeDirectoryService) RequesterDomain(ctx context.Context, accessToken string) string {
	return f.domain
}

func (f *fakeDirectoryService) SearchUsers(ctx context.Context, accessToken, query string) (*directoryDto.UserSearchResponse, *errors.AppError) {
	return &directoryDto.UserSearchResponse{}, nil
}

func (f *fakeDirectoryService) ResolveProfiles(ctx context.Context, accessToken string, emails []string) map[string]directoryDto.GraphUser {
	return f.profiles
}

func (f *fakeDirectoryService) ListGroups(ctx context.Context) ([]directoryEntity.TeamGroup, *errors.AppError) {
	return nil, nil
}

func (f *fakeDirectoryService) CreateGroup(ctx context.Context, req *directoryDto.CreateGroupRequest) (*directoryEntity.TeamGroup, *errors.AppError) {
	return nil, nil
}

func (f *fakeDirectoryService) GetGroupMembers(ctx context.Context, id string) ([]string, *errors.AppError) {
	return nil, nil
}

func newOptimizeContext(t *testing.T, body string, authenticated bool) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/meetings/optimize", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if authenticated {
		c.Set(constants.ContextTokenData, &middleware.BootstrapClaims{
			ObjectID:          "oid-123",
			PreferredUsername: "me@contoso.com",
		})
		c.Set(constants.ContextBootstrapToken, "bootstrap-jwt")
	}
	return c, rec
}

func newTestController(dirDomain string, schedules []availService.ScheduleInfo, profiles map[string]directoryDto.GraphUser) *AvailabilityController {
	svc := availService.NewAvailabilityService(config.AvailabilityConfig{LookupTimeoutSec: 5})
	return NewAvailabilityController(
		svc,
		&fakeAuthService{token: "graph-token"},
		&fakeCalendarService{schedules: schedules},
		&fakeDirectoryService{domain: dirDomain, profiles: profiles},
	)
}

func TestOptimizeMeeting(t *testing.T) {
	schedules := []availService.ScheduleInfo{
		{Email: "a@contoso.com", AvailabilityView: "000000000000000000"},
	}
	profiles := map[string]directoryDto.GraphUser{
		"a@contoso.com": {DisplayName: "Alex Doe"},
	}
	ctrl := newTestController("contoso.com", schedules, profiles)

	body := `{
		"attendees": ["a@contoso.com", "ext@fabrikam.com"],
		"startTime": "2025-06-02T09:00:00Z",
		"endTime": "2025-06-02T18:00:00Z",
		"duration": 30
	}`
	c, rec := newOptimizeContext(t, body, true)

	require.NoError(t, ctrl.OptimizeMeeting(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data struct {
			AttendeesAvailability []availEntity.AttendeeAvailability `json:"attendeesAvailability"`
			SuggestedSlots        []availEntity.ScoredSlot           `json:"suggestedSlots"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data.AttendeesAvailability, 2)
	assert.Equal(t, "Alex Doe", envelope.Data.AttendeesAvailability[0].DisplayName)
	assert.Equal(t, "ext@fabrikam.com", envelope.Data.AttendeesAvailability[1].DisplayName)
	assert.True(t, envelope.Data.AttendeesAvailability[1].IsExternal)
	assert.NotEmpty(t, envelope.Data.SuggestedSlots)
}

func TestOptimizeMeeting_Unauthenticated(t *testing.T) {
	ctrl := newTestController("contoso.com", nil, nil)
	c, _ := newOptimizeContext(t, `{}`, false)

	err := ctrl.OptimizeMeeting(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestOptimizeMeeting_InvalidBody(t *testing.T) {
	ctrl := newTestController("contoso.com", nil, nil)
	c, rec := newOptimizeContext(t, `{"attendees": []}`, true)

	err := ctrl.OptimizeMeeting(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOptimizeMeeting_ExchangeFailure(t *testing.T) {
	svc := availService.NewAvailabilityService(config.AvailabilityConfig{LookupTimeoutSec: 5})
	ctrl := NewAvailabilityController(
		svc,
		&fakeAuthService{appErr: errors.NewAppError(errors.ErrTokenExchangeFailed, "exchange failed", nil)},
		&fakeCalendarService{},
		&fakeDirectoryService{domain: "contoso.com"},
	)

	body := `{
		"attendees": ["a@contoso.com"],
		"startTime": "2025-06-02T09:00:00Z",
		"endTime": "2025-06-02T18:00:00Z",
		"duration": 30
	}`
	c, rec := newOptimizeContext(t, body, true)

	require.NoError(t, ctrl.OptimizeMeeting(c))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
