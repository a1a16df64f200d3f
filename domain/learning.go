package domain

import "time"

// Course statuses.
const (
	CourseStatusNotStarted = "not-started"
	CourseStatusInProgress = "in-progress"
	CourseStatusCompleted  = "completed"
)

// Course is a learning track owning an ordered lesson collection.
type Course struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Title      string     `json:"title"`
	Platform   string     `json:"platform,omitempty"`
	Instructor string     `json:"instructor,omitempty"`
	Status     string     `json:"status"`
	Notes      string     `json:"notes,omitempty"`
	TargetDate *time.Time `json:"target_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Lesson belongs to exactly one course. SortOrder is assigned as the
// current maximum within the course plus one.
type Lesson struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	CourseID        string     `json:"course_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Section         string     `json:"section,omitempty"`
	SortOrder       int        `json:"sort_order"`
	IsCompleted     bool       `json:"is_completed"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ValidCourseStatus reports whether s is one of the accepted course statuses.
func ValidCourseStatus(s string) bool {
	switch s {
	case CourseStatusNotStarted, CourseStatusInProgress, CourseStatusCompleted:
		return true
	}
	return false
}
