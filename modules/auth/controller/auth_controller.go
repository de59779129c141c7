package controller

import (
	"meeting-optimizer-api/core/controller"
	"meeting-optimizer-api/core/errors"
	"meeting-optimizer-api/core/middleware"
	"meeting-optimizer-api/modules/auth/dto"
	"meeting-optimizer-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// AuthController handles token exchange requests
type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

func NewAuthController(svc service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    svc,
	}
}

// ExchangeToken handles POST /auth/token: it swaps the validated bootstrap
// token on the request for a Microsoft Graph access token.
func (c *AuthController) ExchangeToken(ctx echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	bootstrapToken, ok := middleware.BootstrapTokenFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Missing bootstrap token")
	}

	var req dto.TokenRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.AuthService.ExchangeOnBehalfOf(ctx.Request().Context(), claims, bootstrapToken, req.Scopes)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Token exchanged successfully")
}
