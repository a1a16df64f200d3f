package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/lifedesk/backend/domain"
)

// Message is one chat message in the OpenAI-compatible wire format.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is one tool invocation requested by the model. Arguments arrive
// as a JSON-encoded string, not an object.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Tool is a function definition surfaced to the model.
type Tool struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

type Function struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

type chatRequest struct {
	Model      string    `json:"model"`
	Messages   []Message `json:"messages"`
	Tools      []Tool    `json:"tools,omitempty"`
	ToolChoice string    `json:"tool_choice,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Client talks to an OpenAI-compatible chat-completions endpoint. The API
// key is supplied per call because each user carries their own credential.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewClient builds an inference client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// ChatCompletion sends the message list plus the tool catalog and returns
// the assistant message. Tool choice is left to the model. Failures map to
// the domain error taxonomy so the orchestration loop can surface them as
// terminal results.
func (c *Client) ChatCompletion(ctx context.Context, apiKey string, messages []Message, tools []Tool) (*Message, error) {
	payload := chatRequest{
		Model:    c.model,
		Messages: messages,
		Tools:    tools,
	}
	if len(tools) > 0 {
		payload.ToolChoice = "auto"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "failed to encode completion request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "failed to build completion request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUpstream, "inference endpoint unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUpstream, "failed to read completion response", err)
	}

	c.logger.Debug("chat completion finished",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, domain.NewError(domain.ErrCodeUnauthorized, "inference endpoint rejected the API key")
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, domain.NewError(domain.ErrCodeRateLimited, "inference endpoint rate limit reached")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, domain.NewError(domain.ErrCodeUpstream,
			fmt.Sprintf("inference endpoint returned status %d: %s", resp.StatusCode, truncate(raw, 200)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, domain.WrapError(domain.ErrCodeUpstream, "malformed completion response", err)
	}
	if parsed.Error != nil {
		return nil, domain.NewError(domain.ErrCodeUpstream, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, domain.NewError(domain.ErrCodeUpstream, "completion response carried no choices")
	}

	message := parsed.Choices[0].Message
	return &message, nil
}

func truncate(b []byte, max int) string {
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "..."
}
