package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/lifedesk/backend/api/handler"
)

type Handlers struct {
	Assistant *apiHandler.AssistantHandler
	Profile   *apiHandler.ProfileHandler
	Telegram  *apiHandler.TelegramHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Bot API delivers updates without our JWT; identity is resolved from
	// the chat id inside the handler.
	r.POST("/webhook/telegram", handlers.Telegram.Webhook)

	// Protected routes
	r.POST("/api/v1/assistant/chat", authMiddleware(handlers.Assistant.Chat))
	r.GET("/api/v1/assistant/activity", authMiddleware(handlers.Assistant.Activity))

	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))

	r.POST("/api/v1/admin/telegram/webhook", authMiddleware(handlers.Telegram.SetupWebhook))

	return r
}
