package assistant

import (
	"context"
	"fmt"

	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/repository"
)

func (e *Executor) manageProjects(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	switch strArg(args, "action") {
	case "create":
		return e.createProject(ctx, userID, args)
	case "update":
		return e.updateProject(ctx, userID, args)
	case "delete":
		return e.deleteProject(ctx, userID, args)
	case "list":
		return e.listProjects(ctx, userID, args)
	default:
		return fail("Unknown action for manage_projects. Use create, update, delete or list.")
	}
}

func (e *Executor) createProject(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	title := strArg(args, "title")
	if title == "" {
		return fail("Project title is required.")
	}

	status := strArg(args, "status")
	if status == "" {
		status = domain.ProjectStatusNew
	}
	if !domain.ValidProjectStatus(status) {
		return fail(fmt.Sprintf("Invalid project status %q.", status))
	}

	priority := strArg(args, "priority")
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return fail(fmt.Sprintf("Invalid priority %q. Use low, medium or high.", priority))
	}

	category := strArg(args, "category")
	if category == "" {
		category = "General"
	}

	dueDate, ok := optionalDate(args, "due_date")
	if !ok {
		return fail("Due date must be in YYYY-MM-DD format.")
	}

	project := &domain.Project{
		UserID:      userID,
		Title:       title,
		Description: strArg(args, "description"),
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		Category:    category,
	}
	if budget, supplied := floatArg(args, "budget"); supplied {
		if budget < 0 {
			return fail("Project budget must not be negative.")
		}
		project.Budget = &budget
	}

	created, err := e.repos.Projects.Create(ctx, project)
	if err != nil {
		return storeFail(err, "Failed to create the project.")
	}
	// The id is echoed so follow-up tool calls in the same turn can reference it.
	return succeed(fmt.Sprintf("Project '%s' created with id %s.", created.Title, created.ID), created)
}

func (e *Executor) updateProject(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "project_id")
	if id == "" {
		return fail("project_id is required to update a project.")
	}

	project, err := e.repos.Projects.GetByID(ctx, userID, id)
	if err != nil {
		return storeFail(err, "Failed to load the project.")
	}

	if hasArg(args, "title") {
		title := strArg(args, "title")
		if title == "" {
			return fail("Project title must not be empty.")
		}
		project.Title = title
	}
	if hasArg(args, "description") {
		project.Description = strArg(args, "description")
	}
	if hasArg(args, "status") {
		status := strArg(args, "status")
		if !domain.ValidProjectStatus(status) {
			return fail(fmt.Sprintf("Invalid project status %q.", status))
		}
		project.Status = status
	}
	if hasArg(args, "priority") {
		priority := strArg(args, "priority")
		if !domain.ValidPriority(priority) {
			return fail(fmt.Sprintf("Invalid priority %q. Use low, medium or high.", priority))
		}
		project.Priority = priority
	}
	if hasArg(args, "due_date") {
		dueDate, ok := optionalDate(args, "due_date")
		if !ok {
			return fail("Due date must be in YYYY-MM-DD format.")
		}
		project.DueDate = dueDate
	}
	if hasArg(args, "category") {
		project.Category = strArg(args, "category")
	}
	if budget, supplied := floatArg(args, "budget"); supplied {
		if budget < 0 {
			return fail("Project budget must not be negative.")
		}
		project.Budget = &budget
	}

	if err := e.repos.Projects.Update(ctx, project); err != nil {
		return storeFail(err, "Failed to update the project.")
	}
	return succeed(fmt.Sprintf("Project '%s' updated.", project.Title), project)
}

func (e *Executor) deleteProject(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "project_id")
	if id == "" {
		return fail("project_id is required to delete a project.")
	}
	if err := e.repos.Projects.Delete(ctx, userID, id); err != nil {
		return storeFail(err, "Failed to delete the project.")
	}
	return succeed("Project deleted.", nil)
}

func (e *Executor) listProjects(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	projects, err := e.repos.Projects.List(ctx, repository.ProjectFilter{
		UserID:   userID,
		Status:   strArg(args, "status"),
		Category: strArg(args, "category"),
		Limit:    50,
	})
	if err != nil {
		return fail("Failed to list projects.")
	}
	if len(projects) == 0 {
		return succeed("No projects found.", projects)
	}
	return succeed(fmt.Sprintf("Found %d project(s).", len(projects)), projects)
}
