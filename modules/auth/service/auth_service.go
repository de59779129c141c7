package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"meeting-optimizer-api/core/cache"
	"meeting-optimizer-api/core/config"
	"meeting-optimizer-api/core/constants"
	"meeting-optimizer-api/core/errors"
	"meeting-optimizer-api/core/logger"
	"meeting-optimizer-api/core/middleware"
	"meeting-optimizer-api/modules/auth/dto"

	"golang.org/x/oauth2/microsoft"
)

const oboGrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"

// AuthServiceInterface exchanges validated bootstrap tokens for Graph access
// tokens using the on-behalf-of flow.
type AuthServiceInterface interface {
	ExchangeOnBehalfOf(ctx context.Context, claims *middleware.BootstrapClaims, bootstrapToken string, scopes []string) (*dto.TokenResponse, *errors.AppError)
}

type AuthService struct {
	cache    cache.Cache
	client   *http.Client
	tokenURL string
}

func NewAuthService(c cache.Cache) AuthServiceInterface {
	tenant := "common"
	if cfg, ok := config.GetSafe(); ok && cfg.Azure.TenantID != "" {
		tenant = cfg.Azure.TenantID
	}
	return &AuthService{
		cache:    c,
		client:   &http.Client{Timeout: 30 * time.Second},
		tokenURL: microsoft.AzureADEndpoint(tenant).TokenURL,
	}
}

// NewAuthServiceWithTokenURL is used by tests to point at a stub endpoint
func NewAuthServiceWithTokenURL(c cache.Cache, tokenURL string, client *http.Client) AuthServiceInterface {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &AuthService{cache: c, client: client, tokenURL: tokenURL}
}

// ExchangeOnBehalfOf swaps the bootstrap token for a Graph token scoped to
// the requested scopes. Tokens are cached per (user object id, scope set);
// the cache is a decorator here, never consulted by availability scoring.
func (s *AuthService) ExchangeOnBehalfOf(ctx context.Context, claims *middleware.BootstrapClaims, bootstrapToken string, scopes []string) (*dto.TokenResponse, *errors.AppError) {
	if len(scopes) == 0 {
		scopes = constants.DefaultGraphScopes
	}

	if s.cache != nil && claims != nil {
		if token, ok := s.cache.GetGraphToken(ctx, claims.ObjectID, scopes); ok {
			return &dto.TokenResponse{AccessToken: token, Cached: true}, nil
		}
	}

	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrInternalServer, "config not initialized", nil)
	}

	form := url.Values{}
	form.Set("client_id", cfg.Azure.ClientID)
	form.Set("client_secret", cfg.Azure.ClientSecret)
	form.Set("grant_type", oboGrantType)
	form.Set("assertion", bootstrapToken)
	form.Set("scope", strings.Join(scopes, " "))
	form.Set("requested_token_use", "on_behalf_of")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to build token request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("AuthService:ExchangeOnBehalfOf:RequestError", "error", err)
		return nil, errors.NewAppError(errors.ErrTokenExchangeFailed, "token exchange failed", err)
	}
	defer resp.Body.Close()

	var result struct {
		AccessToken      string `json:"access_token"`
		ExpiresIn        int    `json:"expires_in"`
		Scope            string `json:"scope"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.NewAppError(errors.ErrTokenExchangeFailed, "failed to decode token response", err)
	}

	if result.Error != "" || resp.StatusCode != http.StatusOK {
		logger.Error("AuthService:ExchangeOnBehalfOf:UpstreamError",
			"status", resp.StatusCode,
			"error", result.Error,
			"description", result.ErrorDescription,
		)
		return nil, errors.NewAppError(errors.ErrTokenExchangeFailed,
			fmt.Sprintf("token exchange failed: %s", result.Error), nil)
	}

	if result.AccessToken == "" {
		return nil, errors.NewAppError(errors.ErrTokenExchangeFailed, "no access_token in response", nil)
	}

	expiresIn := result.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = constants.GraphTokenCacheTTL
	}
	expiresOn := time.Now().Add(time.Duration(expiresIn) * time.Second)

	if s.cache != nil && claims != nil {
		ttl := time.Duration(expiresIn) * time.Second
		if ttl > constants.GraphTokenCacheTTL*time.Second {
			ttl = constants.GraphTokenCacheTTL * time.Second
		}
		if err := s.cache.SetGraphToken(ctx, claims.ObjectID, scopes, result.AccessToken, ttl); err != nil {
			logger.Warn("AuthService:ExchangeOnBehalfOf:CacheSetFailed", "error", err)
		}
	}

	grantedScopes := scopes
	if result.Scope != "" {
		grantedScopes = strings.Fields(result.Scope)
	}

	return &dto.TokenResponse{
		AccessToken: result.AccessToken,
		ExpiresOn:   &expiresOn,
		Scopes:      grantedScopes,
	}, nil
}
