package controller

import (
	"time"

	"meeting-optimizer-api/core/controller"
	"meeting-optimizer-api/core/errors"
	"meeting-optimizer-api/core/middleware"
	authService "meeting-optimizer-api/modules/auth/service"
	"meeting-optimizer-api/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

var calendarReadScopes = []string{"https://graph.microsoft.com/Calendars.Read"}

// defaultEventWindowDays is used when the caller omits the time range
const defaultEventWindowDays = 7

// CalendarController proxies calendar queries for the add-in
type CalendarController struct {
	controller.BaseController
	CalendarService service.CalendarService
	AuthService     authService.AuthServiceInterface
}

func NewCalendarController(calSvc service.CalendarService, authSvc authService.AuthServiceInterface) *CalendarController {
	return &CalendarController{
		BaseController:  controller.NewBaseController(),
		CalendarService: calSvc,
		AuthService:     authSvc,
	}
}

// GetEvents handles GET /calendar/events?startTime=&endTime=
func (c *CalendarController) GetEvents(ctx echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	bootstrapToken, ok := middleware.BootstrapTokenFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing bootstrap token")
	}

	start := time.Now().UTC()
	end := start.AddDate(0, 0, defaultEventWindowDays)

	if v := ctx.QueryParam("startTime"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "startTime must be RFC3339")
		}
		start = parsed
	}
	if v := ctx.QueryParam("endTime"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "endTime must be RFC3339")
		}
		end = parsed
	}
	if !start.Before(end) {
		return c.BadRequest(errors.ErrInvalidInput, "startTime must be before endTime")
	}

	reqCtx := ctx.Request().Context()
	token, appErr := c.AuthService.ExchangeOnBehalfOf(reqCtx, claims, bootstrapToken, calendarReadScopes)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	events, err := c.CalendarService.GetCalendarView(reqCtx, token.AccessToken, start, end)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	return c.SuccessResponse(ctx, events, "Calendar events retrieved successfully")
}
