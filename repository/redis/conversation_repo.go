package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/repository"
)

type conversationRepository struct {
	client     *redislib.Client
	lockTTL    time.Duration
	historyTTL time.Duration
	maxHistory int64
}

// NewConversationRepository creates a Redis-backed conversation state store.
// The lock TTL bounds how long a stuck orchestration loop can block a user;
// history is a capped list used by transports without client-side history.
func NewConversationRepository(client *redislib.Client, lockTTL, historyTTL time.Duration, maxHistory int) repository.ConversationRepository {
	if lockTTL <= 0 {
		lockTTL = 2 * time.Minute
	}
	if historyTTL <= 0 {
		historyTTL = 24 * time.Hour
	}
	if maxHistory <= 0 {
		maxHistory = 20
	}
	return &conversationRepository{
		client:     client,
		lockTTL:    lockTTL,
		historyTTL: historyTTL,
		maxHistory: int64(maxHistory),
	}
}

func (r *conversationRepository) AcquireLock(ctx context.Context, userID string) (bool, error) {
	return r.client.SetNX(ctx, r.lockKey(userID), time.Now().Unix(), r.lockTTL).Result()
}

func (r *conversationRepository) ReleaseLock(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.lockKey(userID)).Err()
}

func (r *conversationRepository) History(ctx context.Context, userID string) ([]domain.ChatMessage, error) {
	raw, err := r.client.LRange(ctx, r.historyKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	messages := make([]domain.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg domain.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (r *conversationRepository) AppendHistory(ctx context.Context, userID string, messages ...domain.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}

	key := r.historyKey(userID)
	values := make([]interface{}, 0, len(messages))
	for _, msg := range messages {
		payload, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		values = append(values, payload)
	}

	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.LTrim(ctx, key, -r.maxHistory, -1)
	pipe.Expire(ctx, key, r.historyTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *conversationRepository) ClearHistory(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.historyKey(userID)).Err()
}

func (r *conversationRepository) lockKey(userID string) string {
	return fmt.Sprintf("assistant:lock:%s", userID)
}

func (r *conversationRepository) historyKey(userID string) string {
	return fmt.Sprintf("assistant:history:%s", userID)
}
