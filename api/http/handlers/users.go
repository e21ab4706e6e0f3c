package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/taskhub/backend/api/http/presenter"
	"github.com/taskhub/backend/pkg/auth"
	"github.com/taskhub/backend/pkg/security/guard"
)

type UserHandler struct {
	identity auth.UseCase
}

func NewUserHandler(identity auth.UseCase) *UserHandler {
	return &UserHandler{identity: identity}
}

// Me returns the authenticated user's own profile.
// @Summary Current user profile
// @Tags    users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.PublicUser
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, ok := guard.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing credentials")
	}
	return presenter.JSON(c, http.StatusOK, user.Public())
}

// UpdateMe applies a partial profile update (email and/or password).
// @Summary Update current user profile
// @Tags    users
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body auth.ProfilePatch true "fields to change"
// @Success 200 {object} auth.PublicUser
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /users/me [patch]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	user, ok := guard.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing credentials")
	}

	var patch auth.ProfilePatch
	if err := c.BodyParser(&patch); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	updated, err := h.identity.UpdateProfile(c.Context(), user, patch)
	if err != nil {
		var ve auth.ErrValidation
		switch {
		case errors.As(err, &ve):
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, auth.ErrEmailTaken):
			return presenter.Error(c, http.StatusConflict, "email already taken")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to update profile")
		}
	}

	return presenter.JSON(c, http.StatusOK, updated.Public())
}
