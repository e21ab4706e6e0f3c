package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/backend/pkg/auth"
)

const testSecret = "test-secret-at-least-32-bytes-long"

func TestIssueValidateRoundTrip(t *testing.T) {
	s := NewStrategy(testSecret, "taskhub", time.Hour)
	user := auth.User{ID: uuid.New()}

	token, err := s.Issue(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := s.Validate(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, user.ID, got)
}

func TestValidateExpired(t *testing.T) {
	s := NewStrategy(testSecret, "taskhub", -time.Minute)

	token, err := s.Issue(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = s.Validate(context.Background(), token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewStrategy(testSecret, "taskhub", time.Hour)
	verifier := NewStrategy("a-completely-different-secret-key", "taskhub", time.Hour)

	token, err := issuer.Issue(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = verifier.Validate(context.Background(), token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateWrongIssuer(t *testing.T) {
	issuer := NewStrategy(testSecret, "someone-else", time.Hour)
	verifier := NewStrategy(testSecret, "taskhub", time.Hour)

	token, err := issuer.Issue(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = verifier.Validate(context.Background(), token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateMalformed(t *testing.T) {
	s := NewStrategy(testSecret, "taskhub", time.Hour)

	for _, payload := range []string{"", "garbage", "a.b.c"} {
		_, err := s.Validate(context.Background(), payload)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	}
}

func TestRevokeIsNoOp(t *testing.T) {
	s := NewStrategy(testSecret, "taskhub", time.Hour)

	token, err := s.Issue(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	require.NoError(t, s.Revoke(context.Background(), token))

	// stateless tokens stay valid after Revoke
	_, err = s.Validate(context.Background(), token)
	require.NoError(t, err)
}
