package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taskhub/backend/pkg/auth"
	"github.com/taskhub/backend/pkg/security/session"
)

// SessionRepository tracks opaque session tokens in the sessions table.
type SessionRepository struct {
	q Querier
}

func NewSessionRepository(q Querier) *SessionRepository {
	return &SessionRepository{q: q}
}

func (r *SessionRepository) Create(ctx context.Context, userID, token string, validity time.Duration) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)
	`, token, userID, time.Now().UTC().Add(validity))
	return err
}

func (r *SessionRepository) Find(ctx context.Context, token string) (session.Record, error) {
	row := r.q.QueryRow(ctx, `
		SELECT user_id, expires_at FROM sessions WHERE token = $1
	`, token)

	var rec session.Record
	if err := row.Scan(&rec.UserID, &rec.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Record{}, auth.ErrNotFound
		}
		return session.Record{}, err
	}
	return rec, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return auth.ErrNotFound
	}
	return nil
}
