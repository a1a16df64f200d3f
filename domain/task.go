package domain

import "time"

// Task statuses and priorities accepted by the API and the assistant tools.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task represents a user-owned activity item.
type Task struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	ProjectID     *string    `json:"project_id,omitempty"`
	ParentTaskID  *string    `json:"parent_task_id,omitempty"`
	EstimatedTime *int       `json:"estimated_time,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == TaskStatusCompleted
}

// ValidTaskStatus reports whether s is one of the accepted task statuses.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the accepted priorities.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
