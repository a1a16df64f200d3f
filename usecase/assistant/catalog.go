package assistant

import "github.com/lifedesk/backend/internal/infrastructure/llm"

// Tool names. Every name here must have exactly one executor branch and
// vice versa; TestCatalogMatchesExecutor enforces the pairing.
const (
	ToolManageTasks         = "manage_tasks"
	ToolManageProjects      = "manage_projects"
	ToolManageNotes         = "manage_notes"
	ToolManageHabits        = "manage_habits"
	ToolManageTransactions  = "manage_transactions"
	ToolManageCourses       = "manage_courses"
	ToolManageLessons       = "manage_lessons"
	ToolManageMoviesSeries  = "manage_movies_series"
	ToolManageBooksPodcasts = "manage_books_podcasts"
	ToolManageClients       = "manage_clients"
	ToolManageFocusSessions = "manage_focus_sessions"
	ToolSearchProject       = "search_project"
	ToolSearchCourse        = "search_course"
	ToolGetOverview         = "get_overview"
)

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": description}
}

func enumProp(description string, values ...string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description, "enum": values}
}

func objectSchema(required []string, properties map[string]interface{}) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func tool(name, description string, parameters map[string]interface{}) llm.Tool {
	return llm.Tool{
		Type: "function",
		Function: llm.Function{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}

// Catalog returns the fixed tool registry surfaced to the model. The
// catalog is the authoritative contract: parameter schemas mirror what the
// executor re-validates at the handler boundary.
func Catalog() []llm.Tool {
	return []llm.Tool{
		tool(ToolManageTasks,
			"Create, update, complete, delete or list the user's tasks. When attaching a task to a project, resolve the project id with search_project first; never invent ids.",
			objectSchema([]string{"action"}, map[string]interface{}{
				"action":         enumProp("Operation to perform", "create", "update", "complete", "delete", "list"),
				"task_id":        prop("string", "Task id, required for update/complete/delete"),
				"title":          prop("string", "Task title, required for create"),
				"description":    prop("string", "Task description"),
				"status":         enumProp("Task status", "todo", "in-progress", "completed"),
				"priority":       enumProp("Task priority", "low", "medium", "high"),
				"due_date":       prop("string", "Due date in YYYY-MM-DD format"),
				"project_id":     prop("string", "Id of an existing project owned by the user"),
				"parent_task_id": prop("string", "Id of the parent task when creating a subtask"),
				"estimated_time": prop("number", "Estimated effort in minutes"),
			})),
		tool(ToolManageProjects,
			"Create, update, delete or list the user's projects.",
			objectSchema([]string{"action"}, map[string]interface{}{
				"action":      enumProp("Operation to perform", "create", "update", "delete", "list"),
				"project_id":  prop("string", "Project id, required for update/delete"),
				"title":       prop("string", "Project title, required for create"),
				"description": prop("string", "Project description"),
				"status":      enumProp("Project status", "new", "in-progress", "completed", "on-hold", "cancelled"),
				"priority":    enumProp("Project priority", "low", "medium", "high"),
				"due_date":    prop("string", "Due date in YYYY-MM-DD format"),
				"budget":      prop("number", "Project budget"),
				"category":    prop("string", "Free-text category, defaults to General"),
			})),
		tool(ToolManageNotes,
			"Create, update, delete or list the user's notes. Notes live in folders and can be pinned.",
			objectSchema([]string{"action"}, map[string]interface{}{
				"action":    enumProp("Operation to perform", "create", "update", "delete", "list"),
				"note_id":   prop("string", "Note id, required for update/delete"),
				"title":     prop("string", "Note title, required for create"),
				"content":   prop("string", "Note body"),
				"folder":    prop("string", "Folder name, defaults to General"),
				"is_pinned": prop("boolean", "Whether the note is pinned"),
			})),
		tool(ToolManageHabits,
			"Create, update, delete or list habits, or toggle today's completion for one habit.",
			objectSchema([]string{"action"}, map[string]interface{}{
				"action":      enumProp("Operation to perform", "create", "update", "delete", "list", "toggle_today"),
				"habit_id":    prop("string", "Habit id, required for update/delete/toggle_today"),
				"name":        prop("string", "Habit name, required for create"),
				"description": prop("string", "Habit description"),
				"frequency":   enumProp("Habit frequency", "daily", "weekly", "monthly"),
				"color":       prop("string", "Display color"),
				"icon":        prop("string", "Display icon"),
			})),
		tool(ToolManageTransactions,
			"Create, update, delete or list income and expense transactions.",
			objectSchema([]string{"action"}, map[string]interface{}{
				"action":         enumProp("Operation to perform", "create", "update", "delete", "list"),
				"transaction_id": prop("string", "Transaction id, required for update/delete"),
				"type":           enumProp("Transaction type, required for create", "income", "expense"),
				"amount":         prop("number", "Positive amount, required for create"),
				"category":       prop("string", "Category, required for create"),
				"description":    prop("string", "Transaction description"),
				"date":           prop("string", "Date in YYYY-MM-DD format, defaults to today"),
				"currency":       prop("string", "Currency code, defaults to USD"),
				"project_id":     prop("string", "Id of a related project"),
			})),
		tool(ToolManageCourses,
			"Create, update, delete or list learning courses. Deleting a course also deletes its lessons.",
			objectSchema([]string{"action"}, map[string]interface{}{
				"action":      enumProp("Operation to perform", "create", "update", "delete", "list"),
				"course_id":   prop("string", "Course id, required for update/delete"),
				"title":       prop("string", "Course title, required for create"),
				"platform":    prop("string", "Platform hosting the course"),
				"instructor":  prop("string", "Instructor name"),
				"status":      enumProp("Course status", "not-started", "in-progress", "completed"),
				"notes":       prop("string", "Free-form notes"),
				"target_date": prop("string", "Target completion date in YYYY-MM-DD format"),
			})),
		tool(ToolManageLessons,
			"Create, update, complete, delete or list lessons inside a course. course_id must be a real course id; resolve it with search_course or capture it from a manage_courses create result in this conversation.",
			objectSchema([]string{"action"}, map[string]interface{}{
				"action":           enumProp("Operation to perform", "create", "update", "complete", "delete", "list"),
				"lesson_id":        prop("string", "Lesson id, required for update/complete/delete"),
				"course_id":        prop("string", "Course id, required for create/list"),
				"title":            prop("string", "Lesson title, required for create"),
				"description":      prop("string", "Lesson description"),
				"duration_minutes": prop("number", "Lesson duration in minutes"),
				"section":          prop("string", "Section grouping label"),
			})),
		tool(ToolManageMoviesSeries,
			"Create, update, delete or list the user's movie and series watch list.",
			objectSchema([]string{"action"}, map[string]interface{}{
				"action":      enumProp("Operation to perform", "create", "update", "delete", "list"),
				"item_id":     prop("string", "Item id, required for update/delete"),
				"name":        prop("string", "Title, required for create"),
				"type":        enumProp("Item type, required for create", "movie", "series"),
				"status":      enumProp("Watch status", "to-watch", "watching", "watched"),
				"description": prop("string", "Item description"),
			})),
		tool(ToolManageBooksPodcasts,
			"Create, update, delete or list the user's book and podcast list.",
			objectSchema([]string{"action"}, map[string]interface{}{
				"action":  enumProp("Operation to perform", "create", "update", "delete", "list"),
				"item_id": prop("string", "Item id, required for update/delete"),
				"name":    prop("string", "Title, required for create"),
				"type":    enumProp("Item type, required for create", "book", "podcast"),
				"status":  enumProp("Consumption status", "to-consume", "consuming", "consumed"),
				"url":     prop("string", "Link to the book or podcast"),
			})),
		tool(ToolManageClients,
			"Create, update, delete or list the user's clients.",
			objectSchema([]string{"action"}, map[string]interface{}{
				"action":    enumProp("Operation to perform", "create", "update", "delete", "list"),
				"client_id": prop("string", "Client id, required for update/delete"),
				"name":      prop("string", "Client name, required for create"),
				"email":     prop("string", "Client email"),
				"phone":     prop("string", "Client phone"),
				"company":   prop("string", "Client company"),
				"status":    enumProp("Client status", "lead", "active", "inactive", "past", "partner"),
				"notes":     prop("string", "Free-form notes"),
			})),
		tool(ToolManageFocusSessions,
			"Start or stop a focus/break timer, or list recent sessions. Only one session can be active at a time.",
			objectSchema([]string{"action"}, map[string]interface{}{
				"action":       enumProp("Operation to perform", "start", "stop", "list"),
				"task_id":      prop("string", "Optional task the session is attached to"),
				"session_type": enumProp("Session type, defaults to focus", "focus", "break"),
			})),
		tool(ToolSearchProject,
			"Find a project by (partial) name and return its id. Use this before attaching tasks or transactions to a project.",
			objectSchema([]string{"query"}, map[string]interface{}{
				"query": prop("string", "Project name or fragment to search for"),
			})),
		tool(ToolSearchCourse,
			"Find a course by (partial) name and return its id. Use this before adding lessons to an existing course.",
			objectSchema([]string{"query"}, map[string]interface{}{
				"query": prop("string", "Course name or fragment to search for"),
			})),
		tool(ToolGetOverview,
			"Summarize the user's day: open tasks, active projects and today's habit progress. Use for schedule or status questions.",
			objectSchema(nil, map[string]interface{}{})),
	}
}
