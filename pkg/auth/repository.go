package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// UserRepository abstracts persistence concerns from the domain layer.
// Implementations may be in-memory, SQL, NoSQL, etc.
// Emails are matched case-insensitively; implementations store them lowercased.
type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Update(ctx context.Context, user User) (User, error)
	// Delete removes the user; the storage layer cascades to owned rows
	// (tasks, sessions, action tokens).
	Delete(ctx context.Context, id uuid.UUID) error
}

// ActionTokenRepository persists single-use reset/verification tokens.
type ActionTokenRepository interface {
	Create(ctx context.Context, token ActionToken) error
	// Consume atomically marks the token used and returns its user id.
	// A missing, expired, mismatched-purpose or already-consumed token
	// yields ErrInvalidToken.
	Consume(ctx context.Context, tokenHash, purpose string) (uuid.UUID, error)
}

// Repositories bundles the stores the identity service works with.
type Repositories interface {
	Users() UserRepository
	ActionTokens() ActionTokenRepository
}

// TxRunner executes fn inside one storage transaction: the Repositories
// handed to fn are bound to that transaction, committed when fn returns
// nil and rolled back otherwise.
type TxRunner interface {
	InTx(ctx context.Context, fn func(r Repositories) error) error
}
