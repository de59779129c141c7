package availability

import (
	"meeting-optimizer-api/core/cache"
	"meeting-optimizer-api/core/config"
	"meeting-optimizer-api/core/database"
	"meeting-optimizer-api/core/middleware"
	"meeting-optimizer-api/modules/auth"
	"meeting-optimizer-api/modules/availability/controller"
	"meeting-optimizer-api/modules/availability/router"
	"meeting-optimizer-api/modules/availability/service"
	"meeting-optimizer-api/modules/calendar"
	"meeting-optimizer-api/modules/directory"

	"github.com/labstack/echo/v4"
)

// Init initializes the availability module and registers routes
func Init(e *echo.Echo, db database.Database, c cache.Cache, mw *middleware.Middleware) {
	availCfg := config.AvailabilityConfig{}
	if cfg, ok := config.GetSafe(); ok {
		availCfg = cfg.Availability
	}

	svc := service.NewAvailabilityService(availCfg)
	authSvc := auth.GetService(c)
	calSvc := calendar.GetService()
	dirSvc := directory.GetService(db)

	ctrl := controller.NewAvailabilityController(svc, authSvc, calSvc, dirSvc)

	router.NewAvailabilityRouter(ctrl).Setup(e, mw)
}
