package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taskhub/backend/pkg/task"
)

// TaskRepository stores tasks. All reads and writes are owner-scoped; the
// queries never distinguish "missing" from "not yours".
type TaskRepository struct {
	q Querier
}

func NewTaskRepository(q Querier) *TaskRepository {
	return &TaskRepository{q: q}
}

func (r *TaskRepository) Create(ctx context.Context, t task.Task) (task.Task, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO tasks (id, owner_id, title, description, status, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, t.ID, t.OwnerID, t.Title, t.Description, t.Status, t.DueDate, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]task.Task, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, owner_id, title, description, status, due_date, created_at, updated_at
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at, id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r *TaskRepository) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (task.Task, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, owner_id, title, description, status, due_date, created_at, updated_at
		FROM tasks WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, err
	}
	return t, nil
}

func (r *TaskRepository) Update(ctx context.Context, t task.Task) (task.Task, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE tasks
		SET title = $3, description = $4, status = $5, due_date = $6, updated_at = $7
		WHERE id = $1 AND owner_id = $2
	`, t.ID, t.OwnerID, t.Title, t.Description, t.Status, t.DueDate, t.UpdatedAt)
	if err != nil {
		return task.Task{}, err
	}
	if cmd.RowsAffected() == 0 {
		return task.Task{}, task.ErrNotFound
	}
	return t, nil
}

func (r *TaskRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return task.ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	var created, updated time.Time
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Status, &t.DueDate, &created, &updated); err != nil {
		return task.Task{}, err
	}
	t.CreatedAt = created.UTC()
	t.UpdatedAt = updated.UTC()
	return t, nil
}
