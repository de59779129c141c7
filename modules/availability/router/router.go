package router

import (
	"meeting-optimizer-api/core/middleware"
	"meeting-optimizer-api/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

type AvailabilityRouter struct {
	Controller *controller.AvailabilityController
}

func NewAvailabilityRouter(ctrl *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{Controller: ctrl}
}

func (r *AvailabilityRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	group := e.Group("/api/v1/meetings", mw.AuthMiddleware())

	group.POST("/optimize", r.Controller.OptimizeMeeting)
}
