package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Task is a single to-do item. OwnerID is set once at creation from the
// authenticated caller and never changes.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      bool       `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ErrNotFound covers both a missing task and a task owned by someone
// else; callers must not be able to tell the two apart.
var ErrNotFound = errors.New("task not found")

// Repository is the persistence port. Every method is owner-scoped.
type Repository interface {
	Create(ctx context.Context, t Task) (Task, error)
	// ListByOwner returns the owner's tasks in stable order.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Task, error)
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (Task, error)
	// Update persists the full record, matching on id and owner.
	Update(ctx context.Context, t Task) (Task, error)
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
