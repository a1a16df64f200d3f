package repository

import (
	"context"

	"github.com/lifedesk/backend/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByTelegramChatID(ctx context.Context, chatID int64) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
}
