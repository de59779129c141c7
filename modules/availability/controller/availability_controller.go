package controller

import (
	"meeting-optimizer-api/core/controller"
	"meeting-optimizer-api/core/errors"
	"meeting-optimizer-api/core/middleware"
	authService "meeting-optimizer-api/modules/auth/service"
	"meeting-optimizer-api/modules/availability/dto"
	"meeting-optimizer-api/modules/availability/service"
	calendarService "meeting-optimizer-api/modules/calendar/service"
	directoryService "meeting-optimizer-api/modules/directory/service"

	"github.com/labstack/echo/v4"
)

var optimizeScopes = []string{
	"https://graph.microsoft.com/Calendars.Read",
	"https://graph.microsoft.com/User.Read",
}

// AvailabilityController handles meeting optimization requests
type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
	AuthService         authService.AuthServiceInterface
	CalendarService     calendarService.CalendarService
	DirectoryService    directoryService.DirectoryServiceInterface
}

func NewAvailabilityController(
	availSvc service.AvailabilityServiceInterface,
	authSvc authService.AuthServiceInterface,
	calSvc calendarService.CalendarService,
	dirSvc directoryService.DirectoryServiceInterface,
) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: availSvc,
		AuthService:         authSvc,
		CalendarService:     calSvc,
		DirectoryService:    dirSvc,
	}
}

// OptimizeMeeting handles POST /meetings/optimize: it classifies attendees
// against the requester's domain, aggregates free/busy data through Graph
// getSchedule and returns ranked slot suggestions.
func (c *AvailabilityController) OptimizeMeeting(ctx echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	bootstrapToken, ok := middleware.BootstrapTokenFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing bootstrap token")
	}

	var req dto.AvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	reqCtx := ctx.Request().Context()

	token, appErr := c.AuthService.ExchangeOnBehalfOf(reqCtx, claims, bootstrapToken, optimizeScopes)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	accessToken := token.AccessToken

	// An unresolvable requester domain is not fatal: attendees are then all
	// classified external and scored with unknown availability.
	requesterDomain := c.DirectoryService.RequesterDomain(reqCtx, accessToken)

	result, appErr := c.AvailabilityService.ComputeAvailability(
		reqCtx, &req, requesterDomain, c.CalendarService.ScheduleLookup(accessToken))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	c.enrichDisplayNames(ctx, accessToken, result)

	return c.SuccessResponse(ctx, result, "Availability computed successfully")
}

// enrichDisplayNames fills in directory display names for internal
// attendees. Best effort; records keep their email as display name when the
// profile cannot be resolved.
func (c *AvailabilityController) enrichDisplayNames(ctx echo.Context, accessToken string, result *dto.AvailabilityResponse) {
	internalEmails := make([]string, 0, len(result.AttendeesAvailability))
	for _, att := range result.AttendeesAvailability {
		if !att.IsExternal {
			internalEmails = append(internalEmails, att.Email)
		}
	}
	if len(internalEmails) == 0 {
		return
	}

	profiles := c.DirectoryService.ResolveProfiles(ctx.Request().Context(), accessToken, internalEmails)
	for i := range result.AttendeesAvailability {
		if profile, ok := profiles[result.AttendeesAvailability[i].Email]; ok && profile.DisplayName != "" {
			result.AttendeesAvailability[i].DisplayName = profile.DisplayName
		}
	}
}
