package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `id, user_id, title, description, status, priority, due_date, project_id, parent_task_id, estimated_time, created_at, updated_at`

func (r *taskRepository) GetByID(ctx context.Context, userID, id string) (*domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE id = $1 AND user_id = $2
	`
	return scanTask(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE user_id = $1
	  AND ($2 = '' OR status = $2)
	  AND ($3 = '' OR priority = $3)
	  AND ($4 = '' OR project_id::text = $4)
	ORDER BY created_at DESC
	LIMIT $5
	`
	rows, err := r.pool.Query(ctx, query,
		filter.UserID,
		filter.Status,
		filter.Priority,
		filter.ProjectID,
		clampLimit(filter.Limit, 20),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, user_id, title, description, status, priority, due_date, project_id, parent_task_id, estimated_time)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		nullTime(task.DueDate),
		task.ProjectID,
		task.ParentTaskID,
		task.EstimatedTime,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $3,
		description = $4,
		status = $5,
		priority = $6,
		due_date = $7,
		project_id = $8,
		parent_task_id = $9,
		estimated_time = $10,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		nullTime(task.DueDate),
		task.ProjectID,
		task.ParentTaskID,
		task.EstimatedTime,
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		task domain.Task
		due  *time.Time
	)
	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&due,
		&task.ProjectID,
		&task.ParentTaskID,
		&task.EstimatedTime,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	task.DueDate = due
	return &task, nil
}
