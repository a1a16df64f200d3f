package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/repository"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
	SELECT id, email, display_name, status, assistant_key, telegram_chat_id, created_at, updated_at
	FROM users
	WHERE id = $1
	`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByTelegramChatID(ctx context.Context, chatID int64) (*domain.User, error) {
	const query = `
	SELECT id, email, display_name, status, assistant_key, telegram_chat_id, created_at, updated_at
	FROM users
	WHERE telegram_chat_id = $1
	`
	return scanUser(r.pool.QueryRow(ctx, query, chatID))
}

func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO users (id, email, display_name, status, assistant_key, telegram_chat_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()), NOW())
	ON CONFLICT (id) DO UPDATE
	SET email = EXCLUDED.email,
		display_name = EXCLUDED.display_name,
		status = EXCLUDED.status,
		assistant_key = EXCLUDED.assistant_key,
		telegram_chat_id = EXCLUDED.telegram_chat_id,
		updated_at = NOW()
	RETURNING created_at, updated_at
	`

	var created interface{}
	if !user.CreatedAt.IsZero() {
		created = user.CreatedAt
	}

	var chatID interface{}
	if user.TelegramChatID != 0 {
		chatID = user.TelegramChatID
	}

	return r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.DisplayName,
		user.Status,
		user.AssistantKey,
		chatID,
		created,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user   domain.User
		chatID *int64
	)
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.Status,
		&user.AssistantKey,
		&chatID,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if chatID != nil {
		user.TelegramChatID = *chatID
	}
	return &user, nil
}
