package telegram

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

// Update is the subset of the Telegram Bot API update payload the webhook
// transport needs.
type Update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		MessageID int64 `json:"message_id"`
		Chat      struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Client wraps the two Bot API calls the relay needs: sendMessage and
// setWebhook.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// NewClient builds a Telegram Bot API client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.telegram.org"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Enabled reports whether a bot token is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.token != ""
}

// SendMessage relays text to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	return c.call(ctx, "sendMessage", map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	})
}

// SetWebhook registers the public webhook URL with the Bot API.
func (c *Client) SetWebhook(ctx context.Context, url string) error {
	return c.call(ctx, "setWebhook", map[string]interface{}{
		"url": url,
	})
}

func (c *Client) call(ctx context.Context, method string, payload map[string]interface{}) error {
	if !c.Enabled() {
		return domain.NewError(domain.ErrCodeInvalid, "telegram bot token is not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WrapError(domain.ErrCodeUpstream, "telegram api unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.WrapError(domain.ErrCodeUpstream, "failed to read telegram response", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil || !parsed.OK {
		c.logger.Warn("telegram api call failed",
			zap.String("method", method),
			zap.Int("status", resp.StatusCode),
			zap.String("description", parsed.Description),
		)
		return domain.NewError(domain.ErrCodeUpstream, "telegram api call failed: "+parsed.Description)
	}
	return nil
}
