package auth

import (
	"context"

	"github.com/google/uuid"
)

// TokenStrategy abstracts how a login credential is issued, validated and
// revoked. It allows use cases and handlers to stay framework-agnostic.
//
// Two implementations exist: a stateless signed JWT (Revoke is a no-op)
// and a server-tracked opaque session token (Revoke enables logout).
type TokenStrategy interface {
	Issue(ctx context.Context, user User) (string, error)
	// Validate resolves the payload to a user id, or ErrInvalidToken.
	Validate(ctx context.Context, payload string) (uuid.UUID, error)
	Revoke(ctx context.Context, payload string) error
}
