package calendar

import (
	"meeting-optimizer-api/core/cache"
	"meeting-optimizer-api/core/middleware"
	"meeting-optimizer-api/modules/auth"
	"meeting-optimizer-api/modules/calendar/controller"
	"meeting-optimizer-api/modules/calendar/router"
	"meeting-optimizer-api/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the calendar module and registers routes
func Init(e *echo.Echo, c cache.Cache, mw *middleware.Middleware) {
	svc := service.NewCalendarService()
	authSvc := auth.GetService(c)
	ctrl := controller.NewCalendarController(svc, authSvc)

	router.NewCalendarRouter(ctrl).Setup(e, mw)
}

// GetService returns a CalendarService for use by other modules
func GetService() service.CalendarService {
	return service.NewCalendarService()
}
