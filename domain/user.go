package domain

import "time"

// User represents an authenticated identity in the platform.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email,omitempty"`
	DisplayName    string    `json:"display_name,omitempty"`
	Status         string    `json:"status"`
	AssistantKey   string    `json:"-"`
	TelegramChatID int64     `json:"telegram_chat_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (u *User) IsActive() bool {
	return u != nil && u.Status == "active"
}

// HasAssistantKey reports whether the user configured an inference API key.
func (u *User) HasAssistantKey() bool {
	return u != nil && u.AssistantKey != ""
}
