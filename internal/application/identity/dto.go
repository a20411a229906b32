package identity

import (
	"time"

	"github.com/gemledger/backend/internal/domain/identity"
	"github.com/gemledger/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// LoginRequest represents a login request
type LoginRequest struct {
	TenantID uuid.UUID `json:"tenant_id" binding:"required"`
	Username string    `json:"username" binding:"required,min=1,max=100"`
	Password string    `json:"password" binding:"required,min=1"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RegisterRequest represents a request to create a user
type RegisterRequest struct {
	Username    string        `json:"username" binding:"required,min=3,max=100"`
	Password    string        `json:"password" binding:"required,min=8,max=72"`
	DisplayName string        `json:"display_name" binding:"max=200"`
	Role        identity.Role `json:"role" binding:"required,oneof=SUPER_ADMIN ADMIN USER"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID     `json:"id"`
	Username    string        `json:"username"`
	DisplayName string        `json:"display_name,omitempty"`
	Role        identity.Role `json:"role"`
	Active      bool          `json:"active"`
	CreatedAt   time.Time     `json:"created_at"`
}

// LoginResponse bundles the token pair with the authenticated user
type LoginResponse struct {
	User   UserResponse    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// ToUserResponse converts a domain user to a response DTO
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Active:      u.Active,
		CreatedAt:   u.CreatedAt,
	}
}
