package domain

import "time"

// Note is a free-form text record organized into folders.
// Pinned notes sort before unpinned ones, ties broken by latest update.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Folder    string    `json:"folder"`
	IsPinned  bool      `json:"is_pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
