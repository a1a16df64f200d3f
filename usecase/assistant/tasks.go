package assistant

import (
	"context"
	"fmt"

	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/repository"
)

func (e *Executor) manageTasks(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	switch strArg(args, "action") {
	case "create":
		return e.createTask(ctx, userID, args)
	case "update":
		return e.updateTask(ctx, userID, args)
	case "complete":
		return e.completeTask(ctx, userID, args)
	case "delete":
		return e.deleteTask(ctx, userID, args)
	case "list":
		return e.listTasks(ctx, userID, args)
	default:
		return fail("Unknown action for manage_tasks. Use create, update, complete, delete or list.")
	}
}

func (e *Executor) createTask(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	title := strArg(args, "title")
	if title == "" {
		return fail("Task title is required.")
	}

	status := strArg(args, "status")
	if status == "" {
		status = domain.TaskStatusTodo
	}
	if !domain.ValidTaskStatus(status) {
		return fail(fmt.Sprintf("Invalid task status %q. Use todo, in-progress or completed.", status))
	}

	priority := strArg(args, "priority")
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return fail(fmt.Sprintf("Invalid priority %q. Use low, medium or high.", priority))
	}

	dueDate, ok := optionalDate(args, "due_date")
	if !ok {
		return fail("Due date must be in YYYY-MM-DD format.")
	}

	task := &domain.Task{
		UserID:      userID,
		Title:       title,
		Description: strArg(args, "description"),
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
	}

	if projectID := strArg(args, "project_id"); projectID != "" {
		if _, err := e.repos.Projects.GetByID(ctx, userID, projectID); err != nil {
			return fail("Project not found. Resolve the project with search_project before attaching a task to it.")
		}
		task.ProjectID = &projectID
	}
	if parentID := strArg(args, "parent_task_id"); parentID != "" {
		if _, err := e.repos.Tasks.GetByID(ctx, userID, parentID); err != nil {
			return fail("Parent task not found.")
		}
		task.ParentTaskID = &parentID
	}
	if minutes, supplied := intArg(args, "estimated_time"); supplied {
		if minutes < 0 {
			return fail("Estimated time must not be negative.")
		}
		task.EstimatedTime = &minutes
	}

	created, err := e.repos.Tasks.Create(ctx, task)
	if err != nil {
		return storeFail(err, "Failed to create the task.")
	}
	return succeed(fmt.Sprintf("Task '%s' created.", created.Title), created)
}

func (e *Executor) updateTask(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "task_id")
	if id == "" {
		return fail("task_id is required to update a task.")
	}

	task, err := e.repos.Tasks.GetByID(ctx, userID, id)
	if err != nil {
		return storeFail(err, "Failed to load the task.")
	}

	if hasArg(args, "title") {
		title := strArg(args, "title")
		if title == "" {
			return fail("Task title must not be empty.")
		}
		task.Title = title
	}
	if hasArg(args, "description") {
		task.Description = strArg(args, "description")
	}
	if hasArg(args, "status") {
		status := strArg(args, "status")
		if !domain.ValidTaskStatus(status) {
			return fail(fmt.Sprintf("Invalid task status %q. Use todo, in-progress or completed.", status))
		}
		task.Status = status
	}
	if hasArg(args, "priority") {
		priority := strArg(args, "priority")
		if !domain.ValidPriority(priority) {
			return fail(fmt.Sprintf("Invalid priority %q. Use low, medium or high.", priority))
		}
		task.Priority = priority
	}
	if hasArg(args, "due_date") {
		dueDate, ok := optionalDate(args, "due_date")
		if !ok {
			return fail("Due date must be in YYYY-MM-DD format.")
		}
		task.DueDate = dueDate
	}
	if hasArg(args, "project_id") {
		projectID := strArg(args, "project_id")
		if projectID == "" {
			task.ProjectID = nil
		} else {
			if _, err := e.repos.Projects.GetByID(ctx, userID, projectID); err != nil {
				return fail("Project not found. Resolve the project with search_project first.")
			}
			task.ProjectID = &projectID
		}
	}
	if minutes, supplied := intArg(args, "estimated_time"); supplied {
		if minutes < 0 {
			return fail("Estimated time must not be negative.")
		}
		task.EstimatedTime = &minutes
	}

	if err := e.repos.Tasks.Update(ctx, task); err != nil {
		return storeFail(err, "Failed to update the task.")
	}
	return succeed(fmt.Sprintf("Task '%s' updated.", task.Title), task)
}

func (e *Executor) completeTask(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "task_id")
	if id == "" {
		return fail("task_id is required to complete a task.")
	}

	task, err := e.repos.Tasks.GetByID(ctx, userID, id)
	if err != nil {
		return storeFail(err, "Failed to load the task.")
	}

	task.Status = domain.TaskStatusCompleted
	if err := e.repos.Tasks.Update(ctx, task); err != nil {
		return storeFail(err, "Failed to complete the task.")
	}
	return succeed(fmt.Sprintf("Task '%s' marked as completed.", task.Title), task)
}

func (e *Executor) deleteTask(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "task_id")
	if id == "" {
		return fail("task_id is required to delete a task.")
	}
	if err := e.repos.Tasks.Delete(ctx, userID, id); err != nil {
		return storeFail(err, "Failed to delete the task.")
	}
	return succeed("Task deleted.", nil)
}

func (e *Executor) listTasks(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	tasks, err := e.repos.Tasks.List(ctx, repository.TaskFilter{
		UserID:    userID,
		Status:    strArg(args, "status"),
		Priority:  strArg(args, "priority"),
		ProjectID: strArg(args, "project_id"),
		Limit:     20,
	})
	if err != nil {
		return fail("Failed to list tasks.")
	}
	if len(tasks) == 0 {
		return succeed("No tasks found.", tasks)
	}
	return succeed(fmt.Sprintf("Found %d task(s).", len(tasks)), tasks)
}
