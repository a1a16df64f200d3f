package assistant

import (
	"context"

	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/internal/infrastructure/llm"
)

// ChatCompleter abstracts the inference endpoint so the engine stays
// transport-agnostic and testable.
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, apiKey string, messages []llm.Message, tools []llm.Tool) (*llm.Message, error)
}

// Journal abstracts the turn journal so the engine does not depend on the
// storage backing it.
type Journal interface {
	Append(record domain.TurnRecord) error
	Recent(userID string, limit int) ([]domain.TurnRecord, error)
}
