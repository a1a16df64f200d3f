package transport

// ChatRequest carries one user message plus the client-side rolling
// history. History entries outside user/assistant roles are ignored.
type ChatRequest struct {
	Message string        `json:"message"`
	History []ChatHistory `json:"conversationHistory"`
}

type ChatHistory struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ProfileUpdateRequest updates the caller's profile. Pointer fields
// distinguish "leave unchanged" from "set to empty".
type ProfileUpdateRequest struct {
	Email          *string `json:"email"`
	DisplayName    *string `json:"display_name"`
	AssistantKey   *string `json:"assistant_key"`
	TelegramChatID *int64  `json:"telegram_chat_id"`
}

// WebhookSetupRequest registers the public URL the messaging bot should
// deliver updates to.
type WebhookSetupRequest struct {
	URL string `json:"url"`
}
