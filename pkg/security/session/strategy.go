// Package session implements the tracked credential strategy: an opaque
// random identifier resolved through a server-side store, so Revoke gives
// a real logout.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/taskhub/backend/pkg/auth"
)

type Strategy struct {
	repo Repository
	ttl  time.Duration
}

func NewStrategy(repo Repository, ttl time.Duration) *Strategy {
	return &Strategy{repo: repo, ttl: ttl}
}

var _ auth.TokenStrategy = (*Strategy)(nil)

func (s *Strategy) Issue(ctx context.Context, user auth.User) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)

	if err := s.repo.Create(ctx, user.ID.String(), token, s.ttl); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Strategy) Validate(ctx context.Context, payload string) (uuid.UUID, error) {
	rec, err := s.repo.Find(ctx, payload)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return uuid.Nil, auth.ErrInvalidToken
		}
		return uuid.Nil, err
	}

	// the store may keep expired rows around until cleanup
	if time.Now().After(rec.ExpiresAt) {
		_ = s.repo.Delete(ctx, payload)
		return uuid.Nil, auth.ErrInvalidToken
	}

	userID, err := uuid.Parse(rec.UserID)
	if err != nil {
		return uuid.Nil, auth.ErrInvalidToken
	}
	return userID, nil
}

func (s *Strategy) Revoke(ctx context.Context, payload string) error {
	err := s.repo.Delete(ctx, payload)
	if errors.Is(err, auth.ErrNotFound) {
		return nil
	}
	return err
}
