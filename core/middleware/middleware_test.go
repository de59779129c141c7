package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClientID = "api-client-id"

func testKeyAndMiddleware(t *testing.T) (*rsa.PrivateKey, *Middleware) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	mw := NewWithKeyfunc(testClientID, func(token *jwt.Token) (any, error) {
		return &key.PublicKey, nil
	})
	return key, mw
}

func signedToken(t *testing.T, key *rsa.PrivateKey, mutate func(jwt.MapClaims)) string {
	t.Helper()
	claims := jwt.MapClaims{
		"aud":                testClientID,
		"iss":                "https://login.microsoftonline.com/tenant-1/v2.0",
		"oid":                "oid-123",
		"tid":                "tenant-1",
		"name":               "Pat Example",
		"preferred_username": "pat@contoso.com",
		"exp":                time.Now().Add(time.Hour).Unix(),
		"iat":                time.Now().Unix(),
	}
	if mutate != nil {
		mutate(claims)
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return raw
}

func TestValidateToken(t *testing.T) {
	key, mw := testKeyAndMiddleware(t)

	claims, err := mw.ValidateToken(signedToken(t, key, nil))

	require.NoError(t, err)
	assert.Equal(t, "oid-123", claims.ObjectID)
	assert.Equal(t, "tenant-1", claims.TenantID)
	assert.Equal(t, "Pat Example", claims.Name)
	assert.Equal(t, "pat@contoso.com", claims.PreferredUsername)
}

func TestValidateToken_Rejections(t *testing.T) {
	key, mw := testKeyAndMiddleware(t)

	tests := []struct {
		name   string
		mutate func(jwt.MapClaims)
	}{
		{"wrong audience", func(c jwt.MapClaims) { c["aud"] = "some-other-app" }},
		{"expired", func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Hour).Unix() }},
		{"non-microsoft issuer", func(c jwt.MapClaims) { c["iss"] = "https://evil.example.com/v2.0" }},
		{"v1 issuer", func(c jwt.MapClaims) { c["iss"] = "https://sts.windows.net/tenant-1/" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mw.ValidateToken(signedToken(t, key, tt.mutate))
			assert.Error(t, err)
		})
	}
}

func TestValidateToken_RejectsHMAC(t *testing.T) {
	_, mw := testKeyAndMiddleware(t)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"aud": testClientID,
		"iss": "https://login.microsoftonline.com/tenant-1/v2.0",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = mw.ValidateToken(raw)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	key, mw := testKeyAndMiddleware(t)
	e := echo.New()

	handler := mw.AuthMiddleware()(func(c echo.Context) error {
		claims, ok := ClaimsFromContext(c)
		require.True(t, ok)
		raw, ok := BootstrapTokenFromContext(c)
		require.True(t, ok)
		assert.NotEmpty(t, raw)
		return c.String(http.StatusOK, claims.ObjectID)
	})

	t.Run("valid token passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, key, nil))
		rec := httptest.NewRecorder()

		err := handler(e.NewContext(req, rec))
		require.NoError(t, err)
		assert.Equal(t, "oid-123", rec.Body.String())
	})

	t.Run("missing header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		err := handler(e.NewContext(req, rec))
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer not.a.jwt")
		rec := httptest.NewRecorder()

		err := handler(e.NewContext(req, rec))
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}
