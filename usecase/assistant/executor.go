package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/repository"
)

// ToolHandler executes one tool call for one user. Problems are reported
// through the result, never as a Go error: the model reads failures and
// decides how to recover.
type ToolHandler func(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult

// Repositories bundles every store the tool handlers reach.
type Repositories struct {
	Tasks         repository.TaskRepository
	Projects      repository.ProjectRepository
	Notes         repository.NoteRepository
	Habits        repository.HabitRepository
	Transactions  repository.TransactionRepository
	Courses       repository.CourseRepository
	Lessons       repository.LessonRepository
	MoviesSeries  repository.MovieSeriesRepository
	BooksPodcasts repository.BookPodcastRepository
	Clients       repository.ClientRepository
	Focus         repository.FocusSessionRepository
}

// Executor is the switchboard between tool names and entity handlers.
type Executor struct {
	repos    Repositories
	handlers map[string]ToolHandler
	logger   *zap.Logger
}

// NewExecutor wires every catalog tool to its handler.
func NewExecutor(repos Repositories, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Executor{
		repos:  repos,
		logger: logger,
	}
	e.handlers = map[string]ToolHandler{
		ToolManageTasks:         e.manageTasks,
		ToolManageProjects:      e.manageProjects,
		ToolManageNotes:         e.manageNotes,
		ToolManageHabits:        e.manageHabits,
		ToolManageTransactions:  e.manageTransactions,
		ToolManageCourses:       e.manageCourses,
		ToolManageLessons:       e.manageLessons,
		ToolManageMoviesSeries:  e.manageMoviesSeries,
		ToolManageBooksPodcasts: e.manageBooksPodcasts,
		ToolManageClients:       e.manageClients,
		ToolManageFocusSessions: e.manageFocusSessions,
		ToolSearchProject:       e.searchProject,
		ToolSearchCourse:        e.searchCourse,
		ToolGetOverview:         e.getOverview,
	}
	return e
}

// Names returns the registered tool names.
func (e *Executor) Names() []string {
	names := make([]string, 0, len(e.handlers))
	for name := range e.handlers {
		names = append(names, name)
	}
	return names
}

// Execute parses the raw argument JSON and dispatches to the matching
// handler. Malformed arguments degrade to an empty argument map so the
// handler's own validation produces the user-visible message.
func (e *Executor) Execute(ctx context.Context, userID, name, rawArgs string) domain.ToolResult {
	args := map[string]interface{}{}
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			e.logger.Warn("malformed tool arguments, treating as empty",
				zap.String("tool", name),
				zap.Error(err),
			)
			args = map[string]interface{}{}
		}
	}

	handler, ok := e.handlers[name]
	if !ok {
		return fail(fmt.Sprintf("Unknown tool: %s", name))
	}

	result := handler(ctx, userID, args)
	e.logger.Debug("tool executed",
		zap.String("tool", name),
		zap.Bool("success", result.Success),
	)
	return result
}

func succeed(message string, data interface{}) domain.ToolResult {
	return domain.ToolResult{Success: true, Message: message, Data: data}
}

func fail(message string) domain.ToolResult {
	return domain.ToolResult{Success: false, Message: message}
}

// storeFail converts a repository error into a tool failure, keeping
// not-found messages specific and masking internals otherwise.
func storeFail(err error, fallback string) domain.ToolResult {
	var dErr *domain.Error
	if errors.As(err, &dErr) && dErr.Code == domain.ErrCodeNotFound {
		return fail(dErr.Message)
	}
	return fail(fallback)
}
