package domain

import "time"

// Focus session types.
const (
	SessionTypeFocus = "focus"
	SessionTypeBreak = "break"
)

// FocusSession is a timed work or break interval. At most one session per
// user may be active (EndTime == nil) at any time; the check happens in the
// use case, not the store.
type FocusSession struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	TaskID      *string    `json:"task_id,omitempty"`
	SessionType string     `json:"session_type"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Duration    int        `json:"duration"` // seconds, computed at stop time
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ValidSessionType reports whether t is focus or break.
func ValidSessionType(t string) bool {
	return t == SessionTypeFocus || t == SessionTypeBreak
}

// IsActive reports whether the session has not been stopped yet.
func (s *FocusSession) IsActive() bool {
	return s != nil && s.EndTime == nil
}
