package task

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/taskhub/backend/pkg/auth"
)

// UseCase encapsulates task CRUD. The resolved caller is always an
// explicit argument; every operation is filtered by owner.
type UseCase interface {
	Create(ctx context.Context, owner auth.User, fields Fields) (Task, error)
	List(ctx context.Context, owner auth.User) ([]Task, error)
	Update(ctx context.Context, owner auth.User, id uuid.UUID, patch Patch) (Task, error)
	Delete(ctx context.Context, owner auth.User, id uuid.UUID) error
}

// Fields carries the caller-supplied values for a new task.
type Fields struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      bool       `json:"status"`
	DueDate     *time.Time `json:"due_date"`
}

// Patch lists the fields to change; nil fields keep their prior value.
type Patch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *bool      `json:"status"`
	DueDate     *time.Time `json:"due_date"`
}

// ErrValidation is a simple validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func validateFields(title, description string) error {
	if err := validation.Validate(title, validation.Required, validation.Length(1, 200)); err != nil {
		return ErrValidation("title: " + err.Error())
	}
	if err := validation.Validate(description, validation.Length(0, 500)); err != nil {
		return ErrValidation("description: " + err.Error())
	}
	return nil
}

func (s *service) Create(ctx context.Context, owner auth.User, fields Fields) (Task, error) {
	title := strings.TrimSpace(fields.Title)
	if err := validateFields(title, fields.Description); err != nil {
		return Task{}, err
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, Task{
		ID:          uuid.New(),
		OwnerID:     owner.ID,
		Title:       title,
		Description: fields.Description,
		Status:      fields.Status,
		DueDate:     fields.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *service) List(ctx context.Context, owner auth.User) ([]Task, error) {
	return s.repo.ListByOwner(ctx, owner.ID)
}

func (s *service) Update(ctx context.Context, owner auth.User, id uuid.UUID, patch Patch) (Task, error) {
	t, err := s.repo.GetByIDForOwner(ctx, owner.ID, id)
	if err != nil {
		return Task{}, err
	}

	if patch.Title != nil {
		t.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}

	if err := validateFields(t.Title, t.Description); err != nil {
		return Task{}, err
	}

	t.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, t)
}

func (s *service) Delete(ctx context.Context, owner auth.User, id uuid.UUID) error {
	return s.repo.DeleteForOwner(ctx, owner.ID, id)
}
