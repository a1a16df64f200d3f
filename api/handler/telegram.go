package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/lifedesk/backend/api/transport"
	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/internal/infrastructure/telegram"
	"github.com/lifedesk/backend/pkg/httpcontext"
	"github.com/lifedesk/backend/repository"
	assistantUC "github.com/lifedesk/backend/usecase/assistant"
)

// TelegramHandler bridges Bot API updates into the orchestration loop.
// Telegram retries deliveries that do not get a 200, so handler-level
// problems are acknowledged with 200 and reported back into the chat
// instead of to Telegram.
type TelegramHandler struct {
	baseHandler
	uc            *assistantUC.UseCase
	users         repository.UserRepository
	conversations repository.ConversationRepository
	bot           *telegram.Client
}

func NewTelegramHandler(
	uc *assistantUC.UseCase,
	users repository.UserRepository,
	conversations repository.ConversationRepository,
	bot *telegram.Client,
	adapter *httpcontext.Adapter,
	logger *zap.Logger,
) *TelegramHandler {
	return &TelegramHandler{
		baseHandler:   newBaseHandler(adapter, logger),
		uc:            uc,
		users:         users,
		conversations: conversations,
		bot:           bot,
	}
}

// @Summary Telegram webhook
// @Tags telegram
// @Accept json
// @Router /webhook/telegram [post]
func (h *TelegramHandler) Webhook(ctx *fasthttp.RequestCtx) {
	var update telegram.Update
	if err := json.Unmarshal(ctx.PostBody(), &update); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid update payload"))
		return
	}
	if update.Message == nil || update.Message.Text == "" {
		h.respondSuccess(ctx, http.StatusOK, nil)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	chatID := update.Message.Chat.ID
	user, err := h.users.GetByTelegramChatID(stdCtx, chatID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			h.reply(stdCtx, ctx, chatID, "This chat is not linked to an account. Set your telegram_chat_id in the profile first.")
			return
		}
		h.logger.Error("telegram user lookup failed", zap.Int64("chat_id", chatID), zap.Error(err))
		h.respondSuccess(ctx, http.StatusOK, nil)
		return
	}

	history, err := h.conversations.History(stdCtx, user.ID)
	if err != nil {
		h.logger.Warn("failed to load conversation history", zap.String("user_id", user.ID), zap.Error(err))
	}

	replyTurn, err := h.uc.HandleMessage(stdCtx, user.ID, update.Message.Text, history)
	if err != nil {
		h.reply(stdCtx, ctx, chatID, turnErrorText(err))
		return
	}

	if err := h.conversations.AppendHistory(stdCtx, user.ID,
		domain.ChatMessage{Role: domain.RoleUser, Content: update.Message.Text},
		domain.ChatMessage{Role: domain.RoleAssistant, Content: replyTurn.Response},
	); err != nil {
		h.logger.Warn("failed to append conversation history", zap.String("user_id", user.ID), zap.Error(err))
	}

	h.reply(stdCtx, ctx, chatID, replyTurn.Response)
}

// @Summary Register the Telegram webhook URL
// @Tags telegram
// @Accept json
// @Router /api/v1/admin/telegram/webhook [post]
func (h *TelegramHandler) SetupWebhook(ctx *fasthttp.RequestCtx) {
	var req transport.WebhookSetupRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.URL == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "webhook url is required"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.bot.SetWebhook(stdCtx, req.URL); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"webhook": req.URL})
}

func (h *TelegramHandler) reply(stdCtx context.Context, ctx *fasthttp.RequestCtx, chatID int64, text string) {
	if h.bot.Enabled() && text != "" {
		if err := h.bot.SendMessage(stdCtx, chatID, text); err != nil {
			h.logger.Error("failed to send telegram reply", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

func turnErrorText(err error) string {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeConflict):
		return "I am still working on your previous message, one moment."
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return "No assistant API key is configured for your account."
	case domain.IsDomainError(err, domain.ErrCodeRateLimited):
		return "The assistant is rate limited right now, please retry shortly."
	default:
		return "Something went wrong while processing your message. Please try again."
	}
}
