// Package jwt implements the stateless credential strategy: a signed,
// self-contained HS256 token carrying the user id. No server-side state,
// which also means a token cannot be revoked before it expires.
package jwt

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taskhub/backend/pkg/auth"
)

type Strategy struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewStrategy(secret, issuer string, ttl time.Duration) *Strategy {
	return &Strategy{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

var _ auth.TokenStrategy = (*Strategy)(nil)

func (s *Strategy) Issue(ctx context.Context, user auth.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Strategy) Validate(ctx context.Context, payload string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(payload, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, auth.ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil || !token.Valid {
		return uuid.Nil, auth.ErrInvalidToken
	}
	if s.issuer != "" && claims.Issuer != s.issuer {
		return uuid.Nil, auth.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, auth.ErrInvalidToken
	}
	return userID, nil
}

// Revoke is a no-op: a signed token stays valid until it expires.
func (s *Strategy) Revoke(ctx context.Context, payload string) error {
	return nil
}
