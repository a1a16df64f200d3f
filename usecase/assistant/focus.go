package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/lifedesk/backend/domain"
)

func (e *Executor) manageFocusSessions(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	switch strArg(args, "action") {
	case "start":
		return e.startFocusSession(ctx, userID, args)
	case "stop":
		return e.stopFocusSession(ctx, userID)
	case "list":
		return e.listFocusSessions(ctx, userID)
	default:
		return fail("Unknown action for manage_focus_sessions. Use start, stop or list.")
	}
}

func (e *Executor) startFocusSession(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	active, err := e.repos.Focus.GetActive(ctx, userID)
	if err != nil {
		return fail("Failed to check for a running session.")
	}
	if active != nil {
		return fail("A session is already running. Stop it before starting a new one.")
	}

	sessionType := strArg(args, "session_type")
	if sessionType == "" {
		sessionType = domain.SessionTypeFocus
	}
	if !domain.ValidSessionType(sessionType) {
		return fail(fmt.Sprintf("Invalid session type %q. Use focus or break.", sessionType))
	}

	session := &domain.FocusSession{
		UserID:      userID,
		SessionType: sessionType,
		StartTime:   time.Now().UTC(),
	}
	if taskID := strArg(args, "task_id"); taskID != "" {
		if _, err := e.repos.Tasks.GetByID(ctx, userID, taskID); err != nil {
			return fail("Task not found. Start the session without task_id or pick an existing task.")
		}
		session.TaskID = &taskID
	}

	created, err := e.repos.Focus.Create(ctx, session)
	if err != nil {
		return storeFail(err, "Failed to start the session.")
	}
	return succeed(fmt.Sprintf("Started a %s session.", created.SessionType), created)
}

func (e *Executor) stopFocusSession(ctx context.Context, userID string) domain.ToolResult {
	active, err := e.repos.Focus.GetActive(ctx, userID)
	if err != nil {
		return fail("Failed to check for a running session.")
	}
	if active == nil {
		return fail("No session is currently running.")
	}

	now := time.Now().UTC()
	active.EndTime = &now
	active.Duration = int(now.Sub(active.StartTime).Seconds())
	active.Completed = true
	if err := e.repos.Focus.Update(ctx, active); err != nil {
		return storeFail(err, "Failed to stop the session.")
	}
	return succeed(
		fmt.Sprintf("Stopped the %s session after %s.", active.SessionType, formatDuration(active.Duration)),
		active,
	)
}

func (e *Executor) listFocusSessions(ctx context.Context, userID string) domain.ToolResult {
	sessions, err := e.repos.Focus.ListRecent(ctx, userID, 20)
	if err != nil {
		return fail("Failed to list sessions.")
	}
	if len(sessions) == 0 {
		return succeed("No focus sessions recorded.", sessions)
	}

	totalSeconds := 0
	for _, s := range sessions {
		if s.SessionType == domain.SessionTypeFocus {
			totalSeconds += s.Duration
		}
	}
	return succeed(
		fmt.Sprintf("Found %d session(s), %s of focus time.", len(sessions), formatDuration(totalSeconds)),
		map[string]interface{}{"sessions": sessions, "focus_seconds": totalSeconds},
	)
}

func formatDuration(seconds int) string {
	d := time.Duration(seconds) * time.Second
	if d < time.Minute {
		return fmt.Sprintf("%ds", seconds)
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
