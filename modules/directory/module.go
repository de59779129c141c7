package directory

import (
	"context"

	"meeting-optimizer-api/core/cache"
	"meeting-optimizer-api/core/database"
	"meeting-optimizer-api/core/logger"
	"meeting-optimizer-api/core/middleware"
	"meeting-optimizer-api/modules/auth"
	"meeting-optimizer-api/modules/directory/controller"
	"meeting-optimizer-api/modules/directory/dto"
	"meeting-optimizer-api/modules/directory/repository"
	"meeting-optimizer-api/modules/directory/router"
	"meeting-optimizer-api/modules/directory/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the directory module and registers routes
func Init(e *echo.Echo, db database.Database, c cache.Cache, mw *middleware.Middleware) {
	repo := repository.NewTeamGroupRepository(db)
	svc := service.NewDirectoryService(repo)
	authSvc := auth.GetService(c)
	ctrl := controller.NewDirectoryController(svc, authSvc)

	seedDefaultGroups(svc, repo)

	router.NewDirectoryRouter(ctrl).Setup(e, mw)
}

// GetService returns a DirectoryService for use by other modules
func GetService(db database.Database) service.DirectoryServiceInterface {
	return service.NewDirectoryService(repository.NewTeamGroupRepository(db))
}

// seedDefaultGroups inserts the stock enterprise team groups on first run
func seedDefaultGroups(svc service.DirectoryServiceInterface, repo repository.TeamGroupRepositoryInterface) {
	ctx := context.Background()

	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Warn("Directory:SeedDefaultGroups:SchemaFailed", "error", err)
		return
	}

	count, err := repo.CountGroups(ctx)
	if err != nil {
		logger.Warn("Directory:SeedDefaultGroups:CountFailed", "error", err)
		return
	}
	if count > 0 {
		return
	}

	defaults := []dto.CreateGroupRequest{
		{Name: "Legal Team", Description: "Legal department members", Color: "#0078d4"},
		{Name: "Management", Description: "Management team members", Color: "#107c10"},
		{Name: "Finance Team", Description: "Finance department members", Color: "#5c2d91"},
		{Name: "Consultants", Description: "Consulting team members", Color: "#d83b01"},
	}

	for _, g := range defaults {
		if _, appErr := svc.CreateGroup(ctx, &g); appErr != nil {
			logger.Warn("Directory:SeedDefaultGroups:CreateFailed", "group", g.Name, "error", appErr)
		}
	}
	logger.Info("Directory:SeedDefaultGroups:Done", "count", len(defaults))
}
