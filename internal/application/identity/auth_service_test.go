package identity

import (
	"context"
	"testing"
	"time"

	"github.com/gemledger/backend/internal/domain/identity"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/gemledger/backend/internal/infrastructure/auth"
	"github.com/gemledger/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, tenantID uuid.UUID, username string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-characters",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "gemledger-test",
	})
}

func newTestUser(t *testing.T, tenantID uuid.UUID, password string) *identity.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user, err := identity.NewUser(tenantID, "owner", hash, identity.RoleAdmin)
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	t.Run("issues a token pair for valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo, newTestJWTService(), nil)

		tenantID := uuid.New()
		user := newTestUser(t, tenantID, "correct horse")
		userRepo.On("FindByUsername", mock.Anything, tenantID, "owner").Return(user, nil)

		response, err := service.Login(context.Background(), LoginRequest{
			TenantID: tenantID,
			Username: "owner",
			Password: "correct horse",
		})

		require.NoError(t, err)
		assert.Equal(t, "owner", response.User.Username)
		assert.NotEmpty(t, response.Tokens.AccessToken)
		assert.NotEmpty(t, response.Tokens.RefreshToken)
		assert.Equal(t, "Bearer", response.Tokens.TokenType)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo, newTestJWTService(), nil)

		tenantID := uuid.New()
		user := newTestUser(t, tenantID, "correct horse")
		userRepo.On("FindByUsername", mock.Anything, tenantID, "owner").Return(user, nil)
		userRepo.On("FindByUsername", mock.Anything, tenantID, "ghost").Return(nil, shared.ErrNotFound)

		_, wrongPass := service.Login(context.Background(), LoginRequest{
			TenantID: tenantID, Username: "owner", Password: "wrong",
		})
		_, unknownUser := service.Login(context.Background(), LoginRequest{
			TenantID: tenantID, Username: "ghost", Password: "anything",
		})

		assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
		assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	})

	t.Run("deactivated users cannot log in", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo, newTestJWTService(), nil)

		tenantID := uuid.New()
		user := newTestUser(t, tenantID, "correct horse")
		user.Deactivate()
		userRepo.On("FindByUsername", mock.Anything, tenantID, "owner").Return(user, nil)

		_, err := service.Login(context.Background(), LoginRequest{
			TenantID: tenantID, Username: "owner", Password: "correct horse",
		})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Run("rotates the pair for a valid refresh token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		jwtService := newTestJWTService()
		service := NewAuthService(userRepo, jwtService, nil)

		tenantID := uuid.New()
		user := newTestUser(t, tenantID, "correct horse")
		pair, err := jwtService.GenerateTokenPair(user)
		require.NoError(t, err)

		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		fresh, err := service.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.RefreshToken})

		require.NoError(t, err)
		assert.NotEmpty(t, fresh.AccessToken)
	})

	t.Run("an access token is not accepted as a refresh token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		jwtService := newTestJWTService()
		service := NewAuthService(userRepo, jwtService, nil)

		user := newTestUser(t, uuid.New(), "correct horse")
		pair, err := jwtService.GenerateTokenPair(user)
		require.NoError(t, err)

		_, err = service.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.AccessToken})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TOKEN", domainErr.Code)
	})

	t.Run("deactivated users stop refreshing", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		jwtService := newTestJWTService()
		service := NewAuthService(userRepo, jwtService, nil)

		user := newTestUser(t, uuid.New(), "correct horse")
		pair, err := jwtService.GenerateTokenPair(user)
		require.NoError(t, err)

		user.Deactivate()
		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		_, err = service.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.RefreshToken})

		assert.Error(t, err)
	})
}

func TestAuthService_Register(t *testing.T) {
	t.Run("hashes the password and stores the user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo, newTestJWTService(), nil)

		tenantID := uuid.New()
		userRepo.On("FindByUsername", mock.Anything, tenantID, "clerk").Return(nil, shared.ErrNotFound)
		userRepo.On("Save", mock.Anything, mock.MatchedBy(func(u *identity.User) bool {
			return u.Username == "clerk" && u.PasswordHash != "plaintext pass" &&
				auth.VerifyPassword(u.PasswordHash, "plaintext pass")
		})).Return(nil)

		response, err := service.Register(context.Background(), tenantID, RegisterRequest{
			Username: "clerk",
			Password: "plaintext pass",
			Role:     identity.RoleUser,
		})

		require.NoError(t, err)
		assert.Equal(t, "clerk", response.Username)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo, newTestJWTService(), nil)

		tenantID := uuid.New()
		existing := newTestUser(t, tenantID, "pass")
		userRepo.On("FindByUsername", mock.Anything, tenantID, "owner").Return(existing, nil)

		_, err := service.Register(context.Background(), tenantID, RegisterRequest{
			Username: "owner",
			Password: "longenough",
			Role:     identity.RoleUser,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		userRepo.AssertNotCalled(t, "Save")
	})
}
