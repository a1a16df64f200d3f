package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/repository"
)

type habitRepository struct {
	pool *pgxpool.Pool
}

// NewHabitRepository returns a Postgres-backed implementation of HabitRepository.
func NewHabitRepository(pool *pgxpool.Pool) repository.HabitRepository {
	return &habitRepository{pool: pool}
}

const habitColumns = `id, user_id, name, description, frequency, color, icon, created_at, updated_at`

func (r *habitRepository) GetByID(ctx context.Context, userID, id string) (*domain.Habit, error) {
	const query = `
	SELECT ` + habitColumns + `
	FROM habits
	WHERE id = $1 AND user_id = $2
	`
	return scanHabit(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *habitRepository) List(ctx context.Context, userID string) ([]domain.Habit, error) {
	const query = `
	SELECT ` + habitColumns + `
	FROM habits
	WHERE user_id = $1
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []domain.Habit
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, *habit)
	}
	return habits, rows.Err()
}

func (r *habitRepository) Create(ctx context.Context, habit *domain.Habit) (*domain.Habit, error) {
	if habit == nil {
		return nil, domain.ErrInvalidPayload
	}
	if habit.ID == "" {
		habit.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO habits (id, user_id, name, description, frequency, color, icon)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		habit.ID,
		habit.UserID,
		habit.Name,
		habit.Description,
		habit.Frequency,
		habit.Color,
		habit.Icon,
	).Scan(&habit.CreatedAt, &habit.UpdatedAt); err != nil {
		return nil, err
	}
	return habit, nil
}

func (r *habitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	if habit == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE habits
	SET name = $3,
		description = $4,
		frequency = $5,
		color = $6,
		icon = $7,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		habit.ID,
		habit.UserID,
		habit.Name,
		habit.Description,
		habit.Frequency,
		habit.Color,
		habit.Icon,
	).Scan(&habit.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrHabitNotFound
		}
		return err
	}
	return nil
}

func (r *habitRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM habits WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

func (r *habitRepository) GetCompletion(ctx context.Context, userID, habitID, date string) (*domain.HabitCompletion, error) {
	const query = `
	SELECT id, habit_id, user_id, date, created_at
	FROM habit_completions
	WHERE user_id = $1 AND habit_id = $2 AND date = $3
	`
	var completion domain.HabitCompletion
	err := r.pool.QueryRow(ctx, query, userID, habitID, date).Scan(
		&completion.ID,
		&completion.HabitID,
		&completion.UserID,
		&completion.Date,
		&completion.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &completion, nil
}

func (r *habitRepository) CreateCompletion(ctx context.Context, completion *domain.HabitCompletion) (*domain.HabitCompletion, error) {
	if completion == nil {
		return nil, domain.ErrInvalidPayload
	}
	if completion.ID == "" {
		completion.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO habit_completions (id, habit_id, user_id, date)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		completion.ID,
		completion.HabitID,
		completion.UserID,
		completion.Date,
	).Scan(&completion.CreatedAt); err != nil {
		return nil, err
	}
	return completion, nil
}

func (r *habitRepository) DeleteCompletion(ctx context.Context, userID, habitID, date string) error {
	const query = `DELETE FROM habit_completions WHERE user_id = $1 AND habit_id = $2 AND date = $3`
	_, err := r.pool.Exec(ctx, query, userID, habitID, date)
	return err
}

func (r *habitRepository) ListCompletions(ctx context.Context, userID, date string) ([]domain.HabitCompletion, error) {
	const query = `
	SELECT id, habit_id, user_id, date, created_at
	FROM habit_completions
	WHERE user_id = $1 AND ($2 = '' OR date = $2)
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []domain.HabitCompletion
	for rows.Next() {
		var completion domain.HabitCompletion
		if err := rows.Scan(
			&completion.ID,
			&completion.HabitID,
			&completion.UserID,
			&completion.Date,
			&completion.CreatedAt,
		); err != nil {
			return nil, err
		}
		completions = append(completions, completion)
	}
	return completions, rows.Err()
}

func scanHabit(row pgx.Row) (*domain.Habit, error) {
	var habit domain.Habit
	if err := row.Scan(
		&habit.ID,
		&habit.UserID,
		&habit.Name,
		&habit.Description,
		&habit.Frequency,
		&habit.Color,
		&habit.Icon,
		&habit.CreatedAt,
		&habit.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, err
	}
	return &habit, nil
}
