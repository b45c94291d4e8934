package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/gyansetu/gyansetu-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	role domain.Role
	err  error
}

func (s stubResolver) CurrentRole(uint64) (domain.Role, error) {
	return s.role, s.err
}

func newAuthRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetRole(c)})
	})
	return r
}

func get(r http.Handler, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestBearerToken(t *testing.T) {
	tok, err := BearerToken("Bearer abc")
	assert.NoError(t, err)
	assert.Equal(t, "abc", tok)

	tok, err = BearerToken("bearer  abc ")
	assert.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = BearerToken("")
	assert.ErrorIs(t, err, errMissingToken)

	_, err = BearerToken("Token abc")
	assert.ErrorIs(t, err, errBadHeader)

	_, err = BearerToken("Bearer ")
	assert.ErrorIs(t, err, errBadHeader)
}

func TestJWTAuth(t *testing.T) {
	mgr := jwt.NewManager("secret", 60, 600)
	r := newAuthRouter(JWTAuth(mgr))

	access, err := mgr.GenerateAccessToken(42, "a@example.com")
	require.NoError(t, err)
	refresh, err := mgr.GenerateRefreshToken(42)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+refresh).Code, "refresh tokens are not access tokens")

	w := get(r, "Bearer "+access)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestOptionalAuth(t *testing.T) {
	mgr := jwt.NewManager("secret", 60, 600)
	r := newAuthRouter(OptionalAuth(mgr))

	w := get(r, "Bearer garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)
}

func TestResolveRole(t *testing.T) {
	mgr := jwt.NewManager("secret", 60, 600)
	access, _ := mgr.GenerateAccessToken(42, "a@example.com")

	r := newAuthRouter(OptionalAuth(mgr), ResolveRole(stubResolver{role: domain.RoleAdmin}))
	w := get(r, "Bearer "+access)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)

	// anonymous requests skip the lookup
	r = newAuthRouter(OptionalAuth(mgr), ResolveRole(stubResolver{err: errors.New("db down")}))
	assert.Equal(t, http.StatusOK, get(r, "").Code)

	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+access).Code)
}
