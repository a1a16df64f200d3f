package domain

import "time"

// Project statuses.
const (
	ProjectStatusNew        = "new"
	ProjectStatusInProgress = "in-progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusOnHold     = "on-hold"
	ProjectStatusCancelled  = "cancelled"
)

// Project groups tasks and transactions under one initiative.
type Project struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Budget      *float64   `json:"budget,omitempty"`
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ValidProjectStatus reports whether s is one of the accepted project statuses.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusNew, ProjectStatusInProgress, ProjectStatusCompleted,
		ProjectStatusOnHold, ProjectStatusCancelled:
		return true
	}
	return false
}
