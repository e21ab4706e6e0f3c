package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taskhub/backend/pkg/auth"
)

// ActionTokenRepository stores single-use reset/verification tokens.
type ActionTokenRepository struct {
	q Querier
}

func NewActionTokenRepository(q Querier) *ActionTokenRepository {
	return &ActionTokenRepository{q: q}
}

func (r *ActionTokenRepository) Create(ctx context.Context, t auth.ActionToken) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO action_tokens (id, user_id, purpose, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, t.ID, t.UserID, t.Purpose, t.TokenHash, t.ExpiresAt, t.CreatedAt)
	return err
}

// Consume marks the token used in one statement, so a concurrent second
// use cannot win the race.
func (r *ActionTokenRepository) Consume(ctx context.Context, tokenHash, purpose string) (uuid.UUID, error) {
	row := r.q.QueryRow(ctx, `
		UPDATE action_tokens
		SET consumed_at = now()
		WHERE token_hash = $1
		  AND purpose = $2
		  AND consumed_at IS NULL
		  AND expires_at > now()
		RETURNING user_id
	`, tokenHash, purpose)

	var userID uuid.UUID
	if err := row.Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, auth.ErrInvalidToken
		}
		return uuid.Nil, err
	}
	return userID, nil
}
