package domain

import "time"

// Client statuses.
const (
	ClientStatusLead     = "lead"
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
	ClientStatusPast     = "past"
	ClientStatusPartner  = "partner"
)

// Client is a CRM contact.
type Client struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidClientStatus reports whether s is one of the accepted client statuses.
func ValidClientStatus(s string) bool {
	switch s {
	case ClientStatusLead, ClientStatusActive, ClientStatusInactive, ClientStatusPast, ClientStatusPartner:
		return true
	}
	return false
}
