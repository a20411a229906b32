package identity

import (
	"context"

	"github.com/gemledger/backend/internal/domain/identity"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/gemledger/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for a wrong username or password. The
// two cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Username or password is incorrect")

// AuthService handles login, token refresh and user registration
type AuthService struct {
	userRepo identity.UserRepository
	jwt      *auth.JWTService
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, jwt *auth.JWTService, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{userRepo: userRepo, jwt: jwt, logger: logger}
}

// Login authenticates a user and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.TenantID, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		s.logger.Info("Rejected login attempt",
			zap.String("tenant_id", req.TenantID.String()),
			zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{User: ToUserResponse(user), Tokens: tokens}, nil
}

// Refresh exchanges a valid refresh token for a new token pair. The user is
// re-read so revoked or deactivated accounts stop refreshing immediately.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}
	if !user.Active {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Account is deactivated")
	}

	return s.jwt.GenerateTokenPair(user)
}

// Register creates a user in the caller's tenant
func (s *AuthService) Register(ctx context.Context, tenantID uuid.UUID, req RegisterRequest) (*UserResponse, error) {
	if _, err := s.userRepo.FindByUsername(ctx, tenantID, req.Username); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(tenantID, req.Username, hash, req.Role)
	if err != nil {
		return nil, err
	}
	user.DisplayName = req.DisplayName

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}
