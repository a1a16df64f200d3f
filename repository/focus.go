package repository

import (
	"context"

	"github.com/lifedesk/backend/domain"
)

type FocusSessionRepository interface {
	// GetActive returns the session with a null end time for the user,
	// or (nil, nil) when none is active.
	GetActive(ctx context.Context, userID string) (*domain.FocusSession, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]domain.FocusSession, error)
	Create(ctx context.Context, session *domain.FocusSession) (*domain.FocusSession, error)
	Update(ctx context.Context, session *domain.FocusSession) error
}
