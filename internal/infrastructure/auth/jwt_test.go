package auth

import (
	"testing"
	"time"

	"github.com/gemledger/backend/internal/domain/identity"
	"github.com/gemledger/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-0123456789abcdef0123456789",
		Issuer:                 "gemledger-test",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
	})
}

func testUser(t *testing.T) *identity.User {
	user, err := identity.NewUser(uuid.New(), "admin", "$2a$10$hash", identity.RoleAdmin)
	require.NoError(t, err)
	return user
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := testJWTService()
	user := testUser(t)

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.TenantID.String(), claims.TenantID)
	assert.Equal(t, identity.RoleAdmin, claims.Role)

	tenantID, err := claims.GetTenantUUID()
	require.NoError(t, err)
	assert.Equal(t, user.TenantID, tenantID)
}

func TestValidateTokenTypeMismatch(t *testing.T) {
	svc := testJWTService()
	pair, err := svc.GenerateTokenPair(testUser(t))
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := testJWTService()
	_, err := svc.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-0123456789abcdef0123456789",
		Issuer:                 "gemledger-test",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
	})
	pair, err := svc.GenerateTokenPair(testUser(t))
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}
