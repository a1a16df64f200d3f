package profile

import (
	"context"

	"go.uber.org/zap"

	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/repository"
)

// Update carries the requested profile changes. Nil fields are left as-is.
type Update struct {
	Email          *string
	DisplayName    *string
	AssistantKey   *string
	TelegramChatID *int64
}

type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: logger,
	}
}

func (uc *UseCase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// UpdateProfile applies a partial update to the caller's row, creating it
// on first contact. The assistant key is stored verbatim and never echoed
// back in responses.
func (uc *UseCase) UpdateProfile(ctx context.Context, userID string, update Update) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		user = &domain.User{ID: userID, Status: "active"}
	}

	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.DisplayName != nil {
		user.DisplayName = *update.DisplayName
	}
	if update.AssistantKey != nil {
		user.AssistantKey = *update.AssistantKey
	}
	if update.TelegramChatID != nil {
		user.TelegramChatID = *update.TelegramChatID
	}

	if err := uc.users.Upsert(ctx, user); err != nil {
		return nil, err
	}
	uc.logger.Debug("profile updated", zap.String("user_id", userID))
	return user, nil
}
