package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a system user.
// PasswordHash never leaves the backend; handlers serialize PublicUser.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	IsActive     bool
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the outward representation of a User.
type PublicUser struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// Public strips credential material from the user record.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Email:      u.Email,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

// Token purposes for single-use action tokens.
const (
	PurposePasswordReset = "password_reset"
	PurposeVerify        = "verify"
)

// ActionToken is a single-use, short-lived token bound to a user.
// Only the SHA-256 hash of the raw token is stored.
type ActionToken struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Purpose    string
	TokenHash  string
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}
