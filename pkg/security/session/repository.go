package session

import (
	"context"
	"time"
)

// Record is one server-tracked session row.
type Record struct {
	UserID    string
	ExpiresAt time.Time
}

// Repository persists the mapping from an opaque session token to its
// owner. Implementations exist for PostgreSQL and Redis.
type Repository interface {
	Create(ctx context.Context, userID, token string, validity time.Duration) error
	// Find returns auth.ErrNotFound for unknown tokens.
	Find(ctx context.Context, token string) (Record, error)
	Delete(ctx context.Context, token string) error
}
