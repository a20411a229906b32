package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gemledger/backend/internal/domain/identity"
	"github.com/gemledger/backend/internal/infrastructure/auth"
	"github.com/gemledger/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-for-middleware-tests",
		Issuer:                 "gemledger-test",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
	})
}

func newTestUser(t *testing.T, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser(uuid.New(), "aisha", "hashed", role)
	require.NoError(t, err)
	return user
}

func protectedEngine(jwtService *auth.JWTService, extra ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuth(jwtService)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		tenantID, _ := GetTenantID(c)
		c.String(http.StatusOK, tenantID.String())
	})
	engine.GET("/protected", handlers...)
	return engine
}

func TestJWTAuthValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	user := newTestUser(t, identity.RoleAdmin)
	pair, err := jwtService.GenerateTokenPair(user)
	require.NoError(t, err)

	engine := protectedEngine(jwtService)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.TenantID.String(), w.Body.String())
}

func TestJWTAuthMissingHeader(t *testing.T) {
	engine := protectedEngine(newTestJWTService())

	req := httptest.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Missing authorization header")
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	engine := protectedEngine(newTestJWTService())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(AuthHeaderKey, "Basic abc123")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsRefreshToken(t *testing.T) {
	jwtService := newTestJWTService()
	user := newTestUser(t, identity.RoleUser)
	pair, err := jwtService.GenerateTokenPair(user)
	require.NoError(t, err)

	engine := protectedEngine(jwtService)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.RefreshToken)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	jwtService := newTestJWTService()
	user := newTestUser(t, identity.RoleAdmin)
	pair, err := jwtService.GenerateTokenPair(user)
	require.NoError(t, err)

	engine := protectedEngine(jwtService, RequireRoles(identity.RoleAdmin, identity.RoleSuperAdmin))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesForbidsOtherRole(t *testing.T) {
	jwtService := newTestJWTService()
	user := newTestUser(t, identity.RoleUser)
	pair, err := jwtService.GenerateTokenPair(user)
	require.NoError(t, err)

	engine := protectedEngine(jwtService, RequireRoles(identity.RoleSuperAdmin))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient role")
}

func TestRequireRolesWithoutAuth(t *testing.T) {
	engine := gin.New()
	engine.GET("/protected", RequireRoles(identity.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
