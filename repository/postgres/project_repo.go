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

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository returns a Postgres-backed implementation of ProjectRepository.
func NewProjectRepository(pool *pgxpool.Pool) repository.ProjectRepository {
	return &projectRepository{pool: pool}
}

const projectColumns = `id, user_id, title, description, status, priority, due_date, budget, category, created_at, updated_at`

func (r *projectRepository) GetByID(ctx context.Context, userID, id string) (*domain.Project, error) {
	const query = `
	SELECT ` + projectColumns + `
	FROM projects
	WHERE id = $1 AND user_id = $2
	`
	return scanProject(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *projectRepository) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	const query = `
	SELECT ` + projectColumns + `
	FROM projects
	WHERE user_id = $1
	  AND ($2 = '' OR status = $2)
	  AND ($3 = '' OR priority = $3)
	  AND ($4 = '' OR category = $4)
	ORDER BY created_at DESC
	LIMIT $5
	`
	rows, err := r.pool.Query(ctx, query,
		filter.UserID,
		filter.Status,
		filter.Priority,
		filter.Category,
		clampLimit(filter.Limit, 100),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

func (r *projectRepository) SearchByTitle(ctx context.Context, userID, fragment string, limit int) ([]domain.Project, error) {
	const query = `
	SELECT ` + projectColumns + `
	FROM projects
	WHERE user_id = $1 AND title ILIKE '%' || $2 || '%'
	ORDER BY created_at DESC
	LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, userID, fragment, clampLimit(limit, 5))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if project == nil {
		return nil, domain.ErrInvalidPayload
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO projects (id, user_id, title, description, status, priority, due_date, budget, category)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		project.ID,
		project.UserID,
		project.Title,
		project.Description,
		project.Status,
		project.Priority,
		nullTime(project.DueDate),
		project.Budget,
		project.Category,
	).Scan(&project.CreatedAt, &project.UpdatedAt); err != nil {
		return nil, err
	}
	return project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	if project == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE projects
	SET title = $3,
		description = $4,
		status = $5,
		priority = $6,
		due_date = $7,
		budget = $8,
		category = $9,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		project.ID,
		project.UserID,
		project.Title,
		project.Description,
		project.Status,
		project.Priority,
		nullTime(project.DueDate),
		project.Budget,
		project.Category,
	).Scan(&project.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProjectNotFound
		}
		return err
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM projects WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var (
		project domain.Project
		due     *time.Time
	)
	if err := row.Scan(
		&project.ID,
		&project.UserID,
		&project.Title,
		&project.Description,
		&project.Status,
		&project.Priority,
		&due,
		&project.Budget,
		&project.Category,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	project.DueDate = due
	return &project, nil
}
