package middleware

import (
	"context"
	"regexp"
	"strings"

	"meeting-optimizer-api/core/config"
	"meeting-optimizer-api/core/constants"
	"meeting-optimizer-api/core/controller"
	"meeting-optimizer-api/core/errors"
	"meeting-optimizer-api/core/logger"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// issuerPattern accepts any tenant of the Microsoft identity platform v2.0
var issuerPattern = regexp.MustCompile(`^https://login\.microsoftonline\.com/.*/v2\.0$`)

// BootstrapClaims are the claims extracted from a validated SSO bootstrap token
type BootstrapClaims struct {
	ObjectID          string
	TenantID          string
	Name              string
	PreferredUsername string
}

// Middleware validates SSO bootstrap tokens issued to the Outlook add-in
type Middleware struct {
	clientID string
	keyfunc  jwt.Keyfunc
}

// New builds the middleware and starts the background JWKS refresh against
// the common discovery endpoint.
func New(ctx context.Context, cfg *config.Config) (*Middleware, error) {
	jwksURL := constants.LoginBaseURL + constants.JWKSPath

	kf, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, err
	}

	return &Middleware{
		clientID: cfg.Azure.ClientID,
		keyfunc:  kf.Keyfunc,
	}, nil
}

// NewWithKeyfunc builds the middleware with an explicit key resolver; used in tests
func NewWithKeyfunc(clientID string, kf jwt.Keyfunc) *Middleware {
	return &Middleware{clientID: clientID, keyfunc: kf}
}

// AuthMiddleware validates the bootstrap token on the Authorization header
// and stores both the claims and the raw token on the request context. The
// raw token is kept because the on-behalf-of exchange needs it as assertion.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "No valid authorization header found")
			}

			rawToken := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := m.ValidateToken(rawToken)
			if err != nil {
				logger.Warn("Middleware:TokenValidation:Failed", "error", err)
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "Invalid token")
			}

			c.Set(constants.ContextTokenData, claims)
			c.Set(constants.ContextBootstrapToken, rawToken)
			return next(c)
		}
	}
}

// ValidateToken verifies signature, audience and issuer of a bootstrap token
func (m *Middleware) ValidateToken(rawToken string) (*BootstrapClaims, error) {
	token, err := jwt.Parse(rawToken, m.keyfunc,
		jwt.WithAudience(m.clientID),
		jwt.WithValidMethods([]string{"RS256"}),
	)
	if err != nil {
		return nil, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	issuer, _ := mapClaims.GetIssuer()
	if !issuerPattern.MatchString(issuer) {
		return nil, jwt.ErrTokenInvalidIssuer
	}

	claims := &BootstrapClaims{}
	if v, ok := mapClaims["oid"].(string); ok {
		claims.ObjectID = v
	}
	if v, ok := mapClaims["tid"].(string); ok {
		claims.TenantID = v
	}
	if v, ok := mapClaims["name"].(string); ok {
		claims.Name = v
	}
	if v, ok := mapClaims["preferred_username"].(string); ok {
		claims.PreferredUsername = v
	}
	return claims, nil
}

// ClaimsFromContext returns the validated claims stored by AuthMiddleware
func ClaimsFromContext(c echo.Context) (*BootstrapClaims, bool) {
	claims, ok := c.Get(constants.ContextTokenData).(*BootstrapClaims)
	return claims, ok
}

// BootstrapTokenFromContext returns the raw bootstrap token stored by AuthMiddleware
func BootstrapTokenFromContext(c echo.Context) (string, bool) {
	token, ok := c.Get(constants.ContextBootstrapToken).(string)
	return token, ok
}
