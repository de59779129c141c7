package controller

import (
	"context"

	"meeting-optimizer-api/core/controller"
	"meeting-optimizer-api/core/errors"
	"meeting-optimizer-api/core/middleware"
	authService "meeting-optimizer-api/modules/auth/service"
	"meeting-optimizer-api/modules/directory/dto"
	"meeting-optimizer-api/modules/directory/service"

	"github.com/labstack/echo/v4"
)

var userReadScopes = []string{"https://graph.microsoft.com/User.Read"}
var userSearchScopes = []string{"https://graph.microsoft.com/User.ReadBasic.All"}

// DirectoryController handles profile, search and team-group requests
type DirectoryController struct {
	controller.BaseController
	DirectoryService service.DirectoryServiceInterface
	AuthService      authService.AuthServiceInterface
}

func NewDirectoryController(dirSvc service.DirectoryServiceInterface, authSvc authService.AuthServiceInterface) *DirectoryController {
	return &DirectoryController{
		BaseController:   controller.NewBaseController(),
		DirectoryService: dirSvc,
		AuthService:      authSvc,
	}
}

// graphToken exchanges the request's bootstrap token for a Graph token
func (c *DirectoryController) graphToken(ctx echo.Context, scopes []string) (context.Context, string, *echo.HTTPError) {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		return nil, "", c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	bootstrapToken, ok := middleware.BootstrapTokenFromContext(ctx)
	if !ok {
		return nil, "", c.Unauthorized(errors.ErrUnauthorized, "Missing bootstrap token")
	}

	reqCtx := ctx.Request().Context()
	token, appErr := c.AuthService.ExchangeOnBehalfOf(reqCtx, claims, bootstrapToken, scopes)
	if appErr != nil {
		return nil, "", c.BadGateway(appErr.Code, appErr.Message)
	}
	return reqCtx, token.AccessToken, nil
}

// GetProfile handles GET /users/me
func (c *DirectoryController) GetProfile(ctx echo.Context) error {
	reqCtx, accessToken, httpErr := c.graphToken(ctx, userReadScopes)
	if httpErr != nil {
		return httpErr
	}

	profile, appErr := c.DirectoryService.GetMe(reqCtx, accessToken)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, profile, "Profile retrieved successfully")
}

// SearchUsers handles GET /users/search?q=
func (c *DirectoryController) SearchUsers(ctx echo.Context) error {
	query := ctx.QueryParam("q")
	if query == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Missing query parameter q")
	}

	reqCtx, accessToken, httpErr := c.graphToken(ctx, userSearchScopes)
	if httpErr != nil {
		return httpErr
	}

	result, appErr := c.DirectoryService.SearchUsers(reqCtx, accessToken, query)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Users retrieved successfully")
}

// ListGroups handles GET /groups
func (c *DirectoryController) ListGroups(ctx echo.Context) error {
	groups, appErr := c.DirectoryService.ListGroups(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, groups, "Groups retrieved successfully")
}

// CreateGroup handles POST /groups
func (c *DirectoryController) CreateGroup(ctx echo.Context) error {
	var req dto.CreateGroupRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	group, appErr := c.DirectoryService.CreateGroup(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, group, "Group created successfully")
}

// GetGroupMembers handles GET /groups/:id/members
func (c *DirectoryController) GetGroupMembers(ctx echo.Context) error {
	members, appErr := c.DirectoryService.GetGroupMembers(ctx.Request().Context(), ctx.Param("id"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, members, "Group members retrieved successfully")
}
