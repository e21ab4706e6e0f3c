package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/backend/pkg/auth"
)

type memRepo struct {
	records map[string]Record
}

func newMemRepo() *memRepo { return &memRepo{records: make(map[string]Record)} }

func (m *memRepo) Create(ctx context.Context, userID, token string, validity time.Duration) error {
	m.records[token] = Record{UserID: userID, ExpiresAt: time.Now().Add(validity)}
	return nil
}

func (m *memRepo) Find(ctx context.Context, token string) (Record, error) {
	rec, ok := m.records[token]
	if !ok {
		return Record{}, auth.ErrNotFound
	}
	return rec, nil
}

func (m *memRepo) Delete(ctx context.Context, token string) error {
	if _, ok := m.records[token]; !ok {
		return auth.ErrNotFound
	}
	delete(m.records, token)
	return nil
}

func TestIssueValidateRoundTrip(t *testing.T) {
	s := NewStrategy(newMemRepo(), time.Hour)
	user := auth.User{ID: uuid.New()}

	token, err := s.Issue(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, token, 64) // 32 random bytes, hex encoded

	got, err := s.Validate(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, user.ID, got)
}

func TestTokensAreUnique(t *testing.T) {
	s := NewStrategy(newMemRepo(), time.Hour)
	user := auth.User{ID: uuid.New()}

	a, err := s.Issue(context.Background(), user)
	require.NoError(t, err)
	b, err := s.Issue(context.Background(), user)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestValidateUnknownToken(t *testing.T) {
	s := NewStrategy(newMemRepo(), time.Hour)

	_, err := s.Validate(context.Background(), "no-such-token")
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateExpiredTokenIsDropped(t *testing.T) {
	repo := newMemRepo()
	s := NewStrategy(repo, -time.Minute)

	token, err := s.Issue(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = s.Validate(context.Background(), token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)

	// the stale row is cleaned up on first touch
	_, ok := repo.records[token]
	require.False(t, ok)
}

func TestRevoke(t *testing.T) {
	s := NewStrategy(newMemRepo(), time.Hour)

	token, err := s.Issue(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	require.NoError(t, s.Revoke(context.Background(), token))

	_, err = s.Validate(context.Background(), token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)

	// revoking twice is not an error
	require.NoError(t, s.Revoke(context.Background(), token))
}
