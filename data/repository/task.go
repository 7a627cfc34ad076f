// Package repository provides task persistence over the relational store.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taskdesk/taskdesk/logger"
	"github.com/taskdesk/taskdesk/models"
	"github.com/taskdesk/taskdesk/query"
)

// ErrNotFound is returned when a task id does not exist.
var ErrNotFound = errors.New("task not found")

// UpdateOutcome reports how an optimistic update resolved. The caller
// branches on it explicitly; conflicts are never retried here.
type UpdateOutcome int

const (
	// UpdateOK means the row was updated at the expected version.
	UpdateOK UpdateOutcome = iota
	// UpdateConflict means the row still exists but another writer changed
	// it since it was loaded.
	UpdateConflict
	// UpdateGone means the row was deleted since it was loaded.
	UpdateGone
)

// TaskRepository defines the interface for task data operations.
type TaskRepository interface {
	Create(ctx context.Context, t *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id int) (*models.Task, error)
	List(ctx context.Context, c query.Criteria, offset, limit int) ([]*models.Task, error)
	Count(ctx context.Context, c query.Criteria) (int, error)
	Update(ctx context.Context, t *models.Task) (*models.Task, UpdateOutcome, error)
	Delete(ctx context.Context, id int) error
	Exists(ctx context.Context, id int) (bool, error)
}

const taskColumns = "id, title, description, due_date, is_completed, version, created_at, updated_at"

type taskRepository struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewTaskRepository creates a new task repository instance.
func NewTaskRepository(db *sql.DB, logger *logger.Logger) TaskRepository {
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new task. The store assigns the id.
func (r *taskRepository) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO tasks (title, description, due_date, is_completed)
		VALUES ($1, $2, $3, $4)
		RETURNING `+taskColumns,
		t.Title, t.Description, t.DueDate, t.IsCompleted)

	created, err := scanTask(row)
	if err != nil {
		r.logger.Error(ctx, "failed to create task", "error", err)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	r.logger.Info(ctx, "task created", "id", created.ID)
	return created, nil
}

// GetByID retrieves a task by ID.
func (r *taskRepository) GetByID(ctx context.Context, id int) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error(ctx, "failed to get task", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return t, nil
}

// List materializes one window of the composed query. The criteria compile
// to the same WHERE clause used by Count.
func (r *taskRepository) List(ctx context.Context, c query.Criteria, offset, limit int) ([]*models.Task, error) {
	where, args := c.Where()
	q := fmt.Sprintf("SELECT %s FROM tasks%s%s OFFSET $%d LIMIT $%d",
		taskColumns, where, c.OrderBy(), len(args)+1, len(args)+2)
	args = append(args, offset, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		r.logger.Error(ctx, "failed to list tasks", "error", err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// Count returns the number of tasks matching the composed query without
// materializing them.
func (r *taskRepository) Count(ctx context.Context, c query.Criteria) (int, error) {
	where, args := c.Where()

	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks"+where, args...).Scan(&count)
	if err != nil {
		r.logger.Error(ctx, "failed to count tasks", "error", err)
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// Update replaces the task's fields if its version still matches the loaded
// one. When the guarded update touches no row, the outcome distinguishes a
// concurrent change from a concurrent delete.
func (r *taskRepository) Update(ctx context.Context, t *models.Task) (*models.Task, UpdateOutcome, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, is_completed = $4,
		    version = version + 1, updated_at = NOW()
		WHERE id = $5 AND version = $6
		RETURNING `+taskColumns,
		t.Title, t.Description, t.DueDate, t.IsCompleted, t.ID, t.Version)

	updated, err := scanTask(row)
	if err == nil {
		r.logger.Info(ctx, "task updated", "id", updated.ID, "version", updated.Version)
		return updated, UpdateOK, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		r.logger.Error(ctx, "failed to update task", "id", t.ID, "error", err)
		return nil, UpdateOK, fmt.Errorf("failed to update task: %w", err)
	}

	exists, err := r.Exists(ctx, t.ID)
	if err != nil {
		return nil, UpdateOK, err
	}
	if !exists {
		return nil, UpdateGone, nil
	}
	return nil, UpdateConflict, nil
}

// Delete deletes a task by ID.
func (r *taskRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		r.logger.Error(ctx, "failed to delete task", "id", id, "error", err)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	r.logger.Info(ctx, "task deleted", "id", id)
	return nil
}

// Exists reports whether a task id is present.
func (r *taskRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		r.logger.Error(ctx, "failed to check task existence", "id", id, "error", err)
		return false, fmt.Errorf("failed to check task existence: %w", err)
	}
	return exists, nil
}

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*models.Task, error) {
	var t models.Task
	err := s.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.IsCompleted,
		&t.Version, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
