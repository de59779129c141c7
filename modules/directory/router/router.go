package router

import (
	"meeting-optimizer-api/core/middleware"
	"meeting-optimizer-api/modules/directory/controller"

	"github.com/labstack/echo/v4"
)

// DirectoryRouter registers profile, search and team-group routes
type DirectoryRouter struct {
	DirectoryController *controller.DirectoryController
}

func NewDirectoryRouter(directoryController *controller.DirectoryController) *DirectoryRouter {
	return &DirectoryRouter{DirectoryController: directoryController}
}

func (r *DirectoryRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	userRoutes := v1.Group("/users", mw.AuthMiddleware())
	userRoutes.GET("/me", r.DirectoryController.GetProfile)
	userRoutes.GET("/search", r.DirectoryController.SearchUsers)

	groupRoutes := v1.Group("/groups", mw.AuthMiddleware())
	groupRoutes.GET("", r.DirectoryController.ListGroups)
	groupRoutes.POST("", r.DirectoryController.CreateGroup)
	groupRoutes.GET("/:id/members", r.DirectoryController.GetGroupMembers)
}
