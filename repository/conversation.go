package repository

import (
	"context"

	"github.com/lifedesk/backend/domain"
)

// ConversationRepository keeps short-lived per-user conversation state: the
// in-flight turn lock and the rolling history used by transports that carry
// no client-side history (the messaging bot).
type ConversationRepository interface {
	// AcquireLock reserves the user's conversation for one orchestration
	// loop. It returns false when another loop is already in flight.
	AcquireLock(ctx context.Context, userID string) (bool, error)
	ReleaseLock(ctx context.Context, userID string) error

	History(ctx context.Context, userID string) ([]domain.ChatMessage, error)
	AppendHistory(ctx context.Context, userID string, messages ...domain.ChatMessage) error
	ClearHistory(ctx context.Context, userID string) error
}
