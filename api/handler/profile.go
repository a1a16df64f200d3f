package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/lifedesk/backend/api/transport"
	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/pkg/httpcontext"
	profileUC "github.com/lifedesk/backend/usecase/profile"
)

type ProfileHandler struct {
	baseHandler
	uc *profileUC.UseCase
}

func NewProfileHandler(uc *profileUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Get profile
// @Tags profile
// @Success 200 {object} transport.Envelope
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetProfile(ctx *fasthttp.RequestCtx) {
	userID := string(ctx.Request.Header.Peek("X-User-ID"))
	if userID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing user id"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.GetProfile(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, profileView(user))
}

// @Summary Update profile
// @Tags profile
// @Accept json
// @Produce json
// @Router /api/v1/profile [put]
func (h *ProfileHandler) UpdateProfile(ctx *fasthttp.RequestCtx) {
	userID := string(ctx.Request.Header.Peek("X-User-ID"))
	if userID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing user id"))
		return
	}

	var req transport.ProfileUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateProfile(stdCtx, userID, profileUC.Update{
		Email:          req.Email,
		DisplayName:    req.DisplayName,
		AssistantKey:   req.AssistantKey,
		TelegramChatID: req.TelegramChatID,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, profileView(updated))
}

// profileView hides the raw assistant key, exposing only whether it is set.
func profileView(user *domain.User) map[string]interface{} {
	return map[string]interface{}{
		"id":                user.ID,
		"email":             user.Email,
		"display_name":      user.DisplayName,
		"status":            user.Status,
		"has_assistant_key": user.HasAssistantKey(),
		"telegram_chat_id":  user.TelegramChatID,
		"created_at":        user.CreatedAt,
		"updated_at":        user.UpdatedAt,
	}
}
