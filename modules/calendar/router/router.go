package router

import (
	"meeting-optimizer-api/core/middleware"
	"meeting-optimizer-api/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

// CalendarRouter registers calendar proxy routes
type CalendarRouter struct {
	CalendarController *controller.CalendarController
}

func NewCalendarRouter(calendarController *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{CalendarController: calendarController}
}

func (r *CalendarRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	calendarRoutes := v1.Group("/calendar", mw.AuthMiddleware())

	calendarRoutes.GET("/events", r.CalendarController.GetEvents)
}
