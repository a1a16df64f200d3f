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

type focusSessionRepository struct {
	pool *pgxpool.Pool
}

// NewFocusSessionRepository returns a Postgres-backed implementation of FocusSessionRepository.
func NewFocusSessionRepository(pool *pgxpool.Pool) repository.FocusSessionRepository {
	return &focusSessionRepository{pool: pool}
}

const focusColumns = `id, user_id, task_id, session_type, start_time, end_time, duration, completed, created_at`

func (r *focusSessionRepository) GetActive(ctx context.Context, userID string) (*domain.FocusSession, error) {
	const query = `
	SELECT ` + focusColumns + `
	FROM focus_sessions
	WHERE user_id = $1 AND end_time IS NULL
	ORDER BY start_time DESC
	LIMIT 1
	`
	session, err := scanFocusSession(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

func (r *focusSessionRepository) ListRecent(ctx context.Context, userID string, limit int) ([]domain.FocusSession, error) {
	const query = `
	SELECT ` + focusColumns + `
	FROM focus_sessions
	WHERE user_id = $1
	ORDER BY start_time DESC
	LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, clampLimit(limit, 20))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.FocusSession
	for rows.Next() {
		session, err := scanFocusSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

func (r *focusSessionRepository) Create(ctx context.Context, session *domain.FocusSession) (*domain.FocusSession, error) {
	if session == nil {
		return nil, domain.ErrInvalidPayload
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO focus_sessions (id, user_id, task_id, session_type, start_time, end_time, duration, completed)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		session.ID,
		session.UserID,
		session.TaskID,
		session.SessionType,
		session.StartTime,
		nullTime(session.EndTime),
		session.Duration,
		session.Completed,
	).Scan(&session.CreatedAt); err != nil {
		return nil, err
	}
	return session, nil
}

func (r *focusSessionRepository) Update(ctx context.Context, session *domain.FocusSession) error {
	if session == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE focus_sessions
	SET end_time = $3,
		duration = $4,
		completed = $5
	WHERE id = $1 AND user_id = $2
	`
	tag, err := r.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		nullTime(session.EndTime),
		session.Duration,
		session.Completed,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func scanFocusSession(row pgx.Row) (*domain.FocusSession, error) {
	var (
		session domain.FocusSession
		end     *time.Time
	)
	if err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.TaskID,
		&session.SessionType,
		&session.StartTime,
		&end,
		&session.Duration,
		&session.Completed,
		&session.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	session.EndTime = end
	return &session, nil
}
