// Package guard is the single authorization chokepoint: every protected
// route resolves its credential here before any handler runs.
package guard

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/taskhub/backend/pkg/auth"
	"github.com/taskhub/backend/pkg/logging"
)

const localsKey = "currentUser"

// UserProvider loads the full account record for a validated credential.
type UserProvider interface {
	GetByID(ctx context.Context, id uuid.UUID) (auth.User, error)
}

// Config wires the two credential transports the guard understands:
// a Bearer header validated by the stateless strategy and a cookie
// validated by the tracked strategy.
type Config struct {
	Bearer     auth.TokenStrategy
	Cookie     auth.TokenStrategy
	CookieName string
	Users      UserProvider
	Log        logging.Logger
}

// New returns a Fiber middleware that resolves the request credential to
// an active user, or rejects with 401/403. On success the full auth.User
// is stored in the request locals; read it back with CurrentUser.
func New(cfg Config) fiber.Handler {
	log := cfg.Log
	if log == nil {
		log = logging.Nop{}
	}

	return func(c *fiber.Ctx) error {
		payload, strategy := extractCredential(c, cfg)
		if payload == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "missing credentials"})
		}

		userID, err := strategy.Validate(c.Context(), payload)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidToken) {
				log.Error(c.Context(), "credential validation failed", "error", err)
			}
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired credentials"})
		}

		user, err := cfg.Users.GetByID(c.Context(), userID)
		if err != nil {
			if !errors.Is(err, auth.ErrNotFound) {
				log.Error(c.Context(), "user lookup failed", "error", err)
			}
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired credentials"})
		}
		if !user.IsActive {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": "account inactive"})
		}

		c.Locals(localsKey, user)
		return c.Next()
	}
}

// extractCredential picks the transport that carried the credential:
// Authorization header first, then the session cookie.
func extractCredential(c *fiber.Ctx, cfg Config) (string, auth.TokenStrategy) {
	if authHeader := c.Get("Authorization"); authHeader != "" {
		return bearerToken(authHeader), cfg.Bearer
	}
	if cookie := c.Cookies(cfg.CookieName); cookie != "" {
		return strings.TrimSpace(cookie), cfg.Cookie
	}
	return "", cfg.Bearer
}

// bearerToken accepts both "Bearer <token>" and a bare "<token>"
// (for non-standard clients).
func bearerToken(header string) string {
	if strings.Contains(header, " ") {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(header)
}

// CurrentUser returns the user resolved by the guard for this request.
func CurrentUser(c *fiber.Ctx) (auth.User, bool) {
	user, ok := c.Locals(localsKey).(auth.User)
	return user, ok
}
