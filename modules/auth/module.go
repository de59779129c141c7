package auth

import (
	"meeting-optimizer-api/core/cache"
	"meeting-optimizer-api/core/middleware"
	"meeting-optimizer-api/modules/auth/controller"
	"meeting-optimizer-api/modules/auth/router"
	"meeting-optimizer-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes
func Init(e *echo.Echo, c cache.Cache, mw *middleware.Middleware) {
	svc := service.NewAuthService(c)
	ctrl := controller.NewAuthController(svc)
	router.NewAuthRouter(ctrl).Setup(e, mw)
}

// GetService returns an AuthService instance for use by other modules
func GetService(c cache.Cache) service.AuthServiceInterface {
	return service.NewAuthService(c)
}
