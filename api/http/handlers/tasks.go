package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/taskhub/backend/api/http/presenter"
	"github.com/taskhub/backend/pkg/security/guard"
	"github.com/taskhub/backend/pkg/task"
)

type TaskHandler struct {
	uc task.UseCase
}

func NewTaskHandler(uc task.UseCase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// Create adds a task owned by the caller.
// @Summary Create task
// @Tags    tasks
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body task.Fields true "task fields"
// @Success 201 {object} task.Task
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	user, ok := guard.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing credentials")
	}

	var fields task.Fields
	if err := c.BodyParser(&fields); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	created, err := h.uc.Create(c.Context(), user, fields)
	if err != nil {
		var ve task.ErrValidation
		if errors.As(err, &ve) {
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to create task")
	}

	return presenter.JSON(c, http.StatusCreated, created)
}

// List returns all of the caller's tasks.
// @Summary List tasks
// @Tags    tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} task.Task
// @Router  /tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	user, ok := guard.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing credentials")
	}

	tasks, err := h.uc.List(c.Context(), user)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list tasks")
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return presenter.JSON(c, http.StatusOK, tasks)
}

// Update applies a partial update to one of the caller's tasks.
// @Summary Update task
// @Tags    tasks
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path string true "task id (UUID)"
// @Param   input body task.Patch true "fields to change"
// @Success 200 {object} task.Task
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [put]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	user, ok := guard.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing credentials")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid task id")
	}

	var patch task.Patch
	if err := c.BodyParser(&patch); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	updated, err := h.uc.Update(c.Context(), user, id, patch)
	if err != nil {
		var ve task.ErrValidation
		switch {
		case errors.As(err, &ve):
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, task.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "task not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to update task")
		}
	}

	return presenter.JSON(c, http.StatusOK, updated)
}

// Delete removes one of the caller's tasks.
// @Summary Delete task
// @Tags    tasks
// @Security BearerAuth
// @Param   id path string true "task id (UUID)"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	user, ok := guard.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing credentials")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid task id")
	}

	if err := h.uc.Delete(c.Context(), user, id); err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "task not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete task")
	}

	return c.SendStatus(http.StatusNoContent)
}
