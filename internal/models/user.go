package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleUser          = "user"
	RolePartnerAdmin  = "partner_admin"
	RolePlatformAdmin = "platform_admin"
	RoleProvider      = "provider"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	PhoneNumber  *string   `json:"phone_number" db:"phone_number"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// TokenResponse represents the token pair returned on login/refresh
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}
