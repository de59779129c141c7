package router

import (
	"meeting-optimizer-api/core/middleware"
	"meeting-optimizer-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

// AuthRouter registers token exchange routes
type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{AuthController: authController}
}

func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	authRoutes := v1.Group("/auth", mw.AuthMiddleware())

	authRoutes.POST("/token", r.AuthController.ExchangeToken)
}
