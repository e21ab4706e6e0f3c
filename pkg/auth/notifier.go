package auth

import (
	"context"

	"github.com/taskhub/backend/pkg/logging"
)

// TokenNotifier delivers raw single-use tokens to the account owner.
// Mail transport lives outside this service; the default implementation
// only logs, which keeps HTTP responses free of the token itself.
type TokenNotifier interface {
	PasswordResetToken(ctx context.Context, email, token string)
	VerificationToken(ctx context.Context, email, token string)
}

// LogNotifier writes tokens to the structured log. Development default.
type LogNotifier struct {
	Log logging.Logger
}

func (n LogNotifier) PasswordResetToken(ctx context.Context, email, token string) {
	n.Log.Info(ctx, "password reset token issued", "email", email, "token", token)
}

func (n LogNotifier) VerificationToken(ctx context.Context, email, token string) {
	n.Log.Info(ctx, "verification token issued", "email", email, "token", token)
}
