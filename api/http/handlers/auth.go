package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/taskhub/backend/api/http/presenter"
	"github.com/taskhub/backend/pkg/auth"
)

// CookieConfig describes how the tracked-strategy credential travels.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type AuthHandler struct {
	identity auth.UseCase
	bearer   auth.TokenStrategy
	cookie   auth.TokenStrategy
	cookies  CookieConfig
}

func NewAuthHandler(identity auth.UseCase, bearer, cookie auth.TokenStrategy, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{identity: identity, bearer: bearer, cookie: cookie, cookies: cookies}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "registration payload"
// @Success 201 {object} auth.PublicUser
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	user, err := h.identity.Register(c.Context(), req.Email, req.Password)
	if err != nil {
		var ve auth.ErrValidation
		switch {
		case errors.As(err, &ve):
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, auth.ErrEmailTaken):
			return presenter.Error(c, http.StatusConflict, "email already taken")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to register user")
		}
	}

	return presenter.JSON(c, http.StatusCreated, user.Public())
}

var (
	errBadPayload    = errors.New("invalid JSON payload")
	errMissingFields = errors.New("email and password are required")
)

// authenticate parses the login payload and resolves it to a user. It
// writes no response; callers map the error with loginFailure. The
// returned user must only be used when err is nil.
func (h *AuthHandler) authenticate(c *fiber.Ctx) (auth.User, error) {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return auth.User{}, errBadPayload
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return auth.User{}, errMissingFields
	}
	return h.identity.Login(c.Context(), req.Email, req.Password)
}

func loginFailure(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errBadPayload), errors.Is(err, errMissingFields):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return presenter.Error(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, auth.ErrAccountInactive):
		return presenter.Error(c, http.StatusForbidden, "account inactive")
	default:
		return presenter.Error(c, http.StatusInternalServerError, "failed to login")
	}
}

// LoginJWT issues a stateless bearer token.
// @Summary Login (JWT strategy)
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "login payload"
// @Success 200 {object} map[string]string
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /auth/jwt/login [post]
func (h *AuthHandler) LoginJWT(c *fiber.Ctx) error {
	user, err := h.authenticate(c)
	if err != nil {
		return loginFailure(c, err)
	}

	token, err := h.bearer.Issue(c.Context(), user)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to issue token")
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// LogoutJWT exists for API symmetry; a signed token cannot be revoked early.
// @Summary Logout (JWT strategy)
// @Tags    auth
// @Security BearerAuth
// @Success 204
// @Router  /auth/jwt/logout [post]
func (h *AuthHandler) LogoutJWT(c *fiber.Ctx) error {
	_ = h.bearer.Revoke(c.Context(), bearerPayload(c))
	return c.SendStatus(http.StatusNoContent)
}

// LoginCookie starts a server-tracked session delivered as a cookie.
// @Summary Login (cookie strategy)
// @Tags    auth
// @Accept  json
// @Param   input body credentialsRequest true "login payload"
// @Success 204
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /auth/cookie/login [post]
func (h *AuthHandler) LoginCookie(c *fiber.Ctx) error {
	user, err := h.authenticate(c)
	if err != nil {
		return loginFailure(c, err)
	}

	token, err := h.cookie.Issue(c.Context(), user)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to start session")
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookies.Name,
		Value:    token,
		Expires:  time.Now().Add(h.cookies.TTL),
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.SendStatus(http.StatusNoContent)
}

// LogoutCookie revokes the session and clears the cookie.
// @Summary Logout (cookie strategy)
// @Tags    auth
// @Success 204
// @Router  /auth/cookie/logout [post]
func (h *AuthHandler) LogoutCookie(c *fiber.Ctx) error {
	if token := c.Cookies(h.cookies.Name); token != "" {
		_ = h.cookie.Revoke(c.Context(), token)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookies.Name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.SendStatus(http.StatusNoContent)
}

type emailRequest struct {
	Email string `json:"email"`
}

type tokenRequest struct {
	Token    string `json:"token"`
	Password string `json:"password,omitempty"`
}

// ForgotPassword starts the password reset flow. The response never
// reveals whether the email is registered.
// @Summary Request password reset
// @Tags    auth
// @Accept  json
// @Param   input body emailRequest true "account email"
// @Success 202
// @Router  /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	if err := h.identity.RequestPasswordReset(c.Context(), req.Email); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to process request")
	}
	return c.SendStatus(http.StatusAccepted)
}

// ResetPassword consumes a reset token and sets a new password.
// @Summary Reset password
// @Tags    auth
// @Accept  json
// @Param   input body tokenRequest true "reset token and new password"
// @Success 204
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req tokenRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	if err := h.identity.ResetPassword(c.Context(), req.Token, req.Password); err != nil {
		var ve auth.ErrValidation
		switch {
		case errors.As(err, &ve):
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, auth.ErrInvalidToken):
			return presenter.Error(c, http.StatusBadRequest, "invalid or expired token")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to reset password")
		}
	}
	return c.SendStatus(http.StatusNoContent)
}

// RequestVerifyToken starts the email verification flow.
// @Summary Request verification token
// @Tags    auth
// @Accept  json
// @Param   input body emailRequest true "account email"
// @Success 202
// @Router  /auth/request-verify-token [post]
func (h *AuthHandler) RequestVerifyToken(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	if err := h.identity.RequestVerification(c.Context(), req.Email); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to process request")
	}
	return c.SendStatus(http.StatusAccepted)
}

// Verify consumes a verification token and marks the account verified.
// @Summary Verify email
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body tokenRequest true "verification token"
// @Success 200 {object} auth.PublicUser
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /auth/verify [post]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req tokenRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	user, err := h.identity.VerifyEmail(c.Context(), req.Token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return presenter.Error(c, http.StatusBadRequest, "invalid or expired token")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to verify email")
	}

	return presenter.JSON(c, http.StatusOK, user.Public())
}

// bearerPayload mirrors the guard's tolerant Authorization parsing.
func bearerPayload(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if strings.Contains(header, " ") {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(header)
}
