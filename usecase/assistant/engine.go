package assistant

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/internal/infrastructure/llm"
	"github.com/lifedesk/backend/repository"
)

const defaultMaxIterations = 10

// UseCase orchestrates one user message against the model and the tool
// executor, producing a single reply plus the ordered action log.
type UseCase struct {
	users         repository.UserRepository
	conversations repository.ConversationRepository
	completer     ChatCompleter
	executor      *Executor
	journal       Journal
	maxIterations int
	logger        *zap.Logger
}

func New(
	users repository.UserRepository,
	conversations repository.ConversationRepository,
	completer ChatCompleter,
	executor *Executor,
	journal Journal,
	maxIterations int,
	logger *zap.Logger,
) *UseCase {
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:         users,
		conversations: conversations,
		completer:     completer,
		executor:      executor,
		journal:       journal,
		maxIterations: maxIterations,
		logger:        logger,
	}
}

// HandleMessage runs the full orchestration loop for one user message.
// history carries the transport-side conversation (may be empty). The
// returned error is a domain.Error describing why the turn could not run;
// per-tool failures never surface here, they live inside Reply.Actions.
func (uc *UseCase) HandleMessage(ctx context.Context, userID, message string, history []domain.ChatMessage) (*domain.Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "message must not be empty")
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasAssistantKey() {
		return nil, domain.ErrMissingAPIKey
	}

	acquired, err := uc.conversations.AcquireLock(ctx, userID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "failed to reserve the conversation", err)
	}
	if !acquired {
		return nil, domain.ErrConversationBusy
	}
	defer func() {
		if rErr := uc.conversations.ReleaseLock(context.WithoutCancel(ctx), userID); rErr != nil {
			uc.logger.Warn("failed to release conversation lock", zap.String("user_id", userID), zap.Error(rErr))
		}
	}()

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: domain.RoleSystem, Content: systemPrompt(time.Now())})
	for _, h := range history {
		if h.Role != domain.RoleUser && h.Role != domain.RoleAssistant {
			continue
		}
		messages = append(messages, llm.Message{Role: h.Role, Content: h.Content})
	}
	messages = append(messages, llm.Message{Role: domain.RoleUser, Content: message})

	tools := Catalog()
	var actions []domain.ActionEntry
	var response string

	for i := 0; i < uc.maxIterations; i++ {
		assistantMsg, err := uc.completer.ChatCompletion(ctx, user.AssistantKey, messages, tools)
		if err != nil {
			return nil, err
		}

		if len(assistantMsg.ToolCalls) == 0 {
			response = strings.TrimSpace(assistantMsg.Content)
			break
		}

		messages = append(messages, *assistantMsg)
		for _, call := range assistantMsg.ToolCalls {
			result := uc.executor.Execute(ctx, userID, call.Function.Name, call.Function.Arguments)
			actions = append(actions, domain.ActionEntry{
				Tool:      call.Function.Name,
				Result:    result,
				Timestamp: time.Now().UTC(),
			})

			payload, err := json.Marshal(result)
			if err != nil {
				payload = []byte(`{"success":false,"message":"internal serialization failure"}`)
			}
			messages = append(messages, llm.Message{
				Role:       domain.RoleTool,
				Content:    string(payload),
				ToolCallID: call.ID,
			})
		}
	}

	reply := assembleReply(response, actions)
	uc.journalTurn(userID, message, reply)
	return reply, nil
}

// assembleReply falls back to a synthesized action summary when the loop
// ended without a final text, which happens when the iteration ceiling
// cuts the model off mid-plan.
func assembleReply(response string, actions []domain.ActionEntry) *domain.Reply {
	if response == "" {
		if len(actions) == 0 {
			response = "I could not complete that request. Please try rephrasing it."
		} else {
			var b strings.Builder
			b.WriteString("Here is what I did:")
			for _, a := range actions {
				glyph := "✅"
				if !a.Result.Success {
					glyph = "❌"
				}
				b.WriteString("\n")
				b.WriteString(glyph)
				b.WriteString(" ")
				b.WriteString(a.Result.Message)
			}
			response = b.String()
		}
	}
	return &domain.Reply{Response: response, Actions: actions}
}

// Activity returns the user's most recent journaled turns, newest first.
func (uc *UseCase) Activity(userID string, limit int) ([]domain.TurnRecord, error) {
	if uc.journal == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.journal.Recent(userID, limit)
}

// journalTurn persists the turn for the activity feed. Journal failures are
// logged and swallowed: the reply already happened.
func (uc *UseCase) journalTurn(userID, message string, reply *domain.Reply) {
	if uc.journal == nil {
		return
	}
	record := domain.TurnRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		Response:  reply.Response,
		Actions:   reply.Actions,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.journal.Append(record); err != nil {
		uc.logger.Warn("failed to journal turn", zap.String("user_id", userID), zap.Error(err))
	}
}
