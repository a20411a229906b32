package identity

import (
	"strings"

	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Role is the access level assigned to a user
type Role string

// Supported roles, from most to least privileged
const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleUser       Role = "USER"
)

// IsValid checks whether the role is one of the supported values
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// User represents an authenticated operator of the system
type User struct {
	shared.TenantEntity
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_tenant_username,priority:2"`
	PasswordHash string `gorm:"type:varchar(200);not null"`
	DisplayName  string `gorm:"type:varchar(200)"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'USER'"`
	Active       bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with a pre-hashed password
func NewUser(tenantID uuid.UUID, username, passwordHash string, role Role) (*User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role is not valid")
	}
	return &User{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		Active:       true,
	}, nil
}

// Deactivate disables login for the user
func (u *User) Deactivate() {
	u.Active = false
}
