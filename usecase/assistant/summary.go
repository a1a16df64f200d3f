package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/repository"
)

// getOverview assembles a cross-entity snapshot: open tasks, active
// projects, today's habit progress and any running focus session.
// Partial store failures degrade to an empty section instead of
// failing the whole call.
func (e *Executor) getOverview(ctx context.Context, userID string, _ map[string]interface{}) domain.ToolResult {
	overview := map[string]interface{}{}
	var lines []string

	tasks, err := e.repos.Tasks.List(ctx, repository.TaskFilter{
		UserID: userID,
		Status: domain.TaskStatusTodo,
		Limit:  10,
	})
	if err == nil {
		overview["open_tasks"] = tasks
		lines = append(lines, fmt.Sprintf("%d open task(s)", len(tasks)))
	}

	projects, err := e.repos.Projects.List(ctx, repository.ProjectFilter{
		UserID: userID,
		Status: domain.ProjectStatusInProgress,
		Limit:  10,
	})
	if err == nil {
		overview["active_projects"] = projects
		lines = append(lines, fmt.Sprintf("%d project(s) in progress", len(projects)))
	}

	habits, err := e.repos.Habits.List(ctx, userID)
	if err == nil {
		done := 0
		if completions, cErr := e.repos.Habits.ListCompletions(ctx, userID, todayStamp()); cErr == nil {
			done = len(completions)
		}
		overview["habits_total"] = len(habits)
		overview["habits_done_today"] = done
		lines = append(lines, fmt.Sprintf("%d of %d habit(s) done today", done, len(habits)))
	}

	if active, err := e.repos.Focus.GetActive(ctx, userID); err == nil && active != nil {
		overview["active_session"] = active
		lines = append(lines, fmt.Sprintf("a %s session is running", active.SessionType))
	}

	if len(lines) == 0 {
		return fail("Failed to build the overview.")
	}
	return succeed("Overview: "+strings.Join(lines, ", ")+".", overview)
}
