package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/lifedesk/backend/api/transport"
	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/pkg/httpcontext"
	assistantUC "github.com/lifedesk/backend/usecase/assistant"
)

type AssistantHandler struct {
	baseHandler
	uc *assistantUC.UseCase
}

func NewAssistantHandler(uc *assistantUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Send a message to the assistant
// @Tags assistant
// @Accept json
// @Produce json
// @Router /api/v1/assistant/chat [post]
func (h *AssistantHandler) Chat(ctx *fasthttp.RequestCtx) {
	userID := string(ctx.Request.Header.Peek("X-User-ID"))
	if userID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing user id"))
		return
	}

	var req transport.ChatRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload"))
		return
	}

	history := make([]domain.ChatMessage, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, domain.ChatMessage{Role: m.Role, Content: m.Content})
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reply, err := h.uc.HandleMessage(stdCtx, userID, req.Message, history)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, reply)
}

// @Summary Recent assistant activity
// @Tags assistant
// @Produce json
// @Router /api/v1/assistant/activity [get]
func (h *AssistantHandler) Activity(ctx *fasthttp.RequestCtx) {
	userID := string(ctx.Request.Header.Peek("X-User-ID"))
	if userID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing user id"))
		return
	}

	limit, _ := strconv.Atoi(string(ctx.QueryArgs().Peek("limit")))
	records, err := h.uc.Activity(userID, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if records == nil {
		records = []domain.TurnRecord{}
	}
	h.respondSuccess(ctx, http.StatusOK, records)
}
