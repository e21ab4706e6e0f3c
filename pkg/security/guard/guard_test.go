package guard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/backend/pkg/auth"
)

type fakeStrategy struct {
	valid  map[string]uuid.UUID
	called int
}

func (s *fakeStrategy) Issue(ctx context.Context, user auth.User) (string, error) {
	return "", nil
}

func (s *fakeStrategy) Validate(ctx context.Context, payload string) (uuid.UUID, error) {
	s.called++
	id, ok := s.valid[payload]
	if !ok {
		return uuid.Nil, auth.ErrInvalidToken
	}
	return id, nil
}

func (s *fakeStrategy) Revoke(ctx context.Context, payload string) error { return nil }

type fakeUsers struct {
	users map[uuid.UUID]auth.User
}

func (f *fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	u, ok := f.users[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}

const cookieName = "taskhub_session"

func setupApp(t *testing.T) (*fiber.App, *fakeStrategy, *fakeStrategy, *fakeUsers) {
	t.Helper()

	bearer := &fakeStrategy{valid: map[string]uuid.UUID{}}
	cookie := &fakeStrategy{valid: map[string]uuid.UUID{}}
	users := &fakeUsers{users: map[uuid.UUID]auth.User{}}

	app := fiber.New()
	app.Get("/protected", New(Config{
		Bearer:     bearer,
		Cookie:     cookie,
		CookieName: cookieName,
		Users:      users,
	}), func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"email": user.Email})
	})

	return app, bearer, cookie, users
}

func addUser(strategy *fakeStrategy, users *fakeUsers, token string, active bool) auth.User {
	u := auth.User{ID: uuid.New(), Email: "alice@example.com", IsActive: active}
	strategy.valid[token] = u.ID
	users.users[u.ID] = u
	return u
}

func TestMissingCredentials(t *testing.T) {
	app, _, _, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestInvalidBearerToken(t *testing.T) {
	app, _, _, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestValidBearerToken(t *testing.T) {
	app, bearer, _, users := setupApp(t)
	addUser(bearer, users, "good-token", true)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBareTokenWithoutScheme(t *testing.T) {
	app, bearer, _, users := setupApp(t)
	addUser(bearer, users, "good-token", true)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "good-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestValidSessionCookie(t *testing.T) {
	app, _, cookie, users := setupApp(t)
	addUser(cookie, users, "session-token", true)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "session-token"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHeaderTakesPrecedenceOverCookie(t *testing.T) {
	app, bearer, cookie, users := setupApp(t)
	addUser(cookie, users, "session-token", true)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "session-token"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, 1, bearer.called)
	require.Zero(t, cookie.called)
}

func TestInactiveUserForbidden(t *testing.T) {
	app, bearer, _, users := setupApp(t)
	addUser(bearer, users, "good-token", false)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDeletedUserUnauthorized(t *testing.T) {
	app, bearer, _, users := setupApp(t)
	u := addUser(bearer, users, "good-token", true)
	delete(users.users, u.ID)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
