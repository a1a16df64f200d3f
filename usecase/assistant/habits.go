package assistant

import (
	"context"
	"fmt"

	"github.com/lifedesk/backend/domain"
)

func (e *Executor) manageHabits(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	switch strArg(args, "action") {
	case "create":
		return e.createHabit(ctx, userID, args)
	case "update":
		return e.updateHabit(ctx, userID, args)
	case "delete":
		return e.deleteHabit(ctx, userID, args)
	case "toggle_today":
		return e.toggleHabitToday(ctx, userID, args)
	case "list":
		return e.listHabits(ctx, userID)
	default:
		return fail("Unknown action for manage_habits. Use create, update, delete, toggle_today or list.")
	}
}

func (e *Executor) createHabit(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	name := strArg(args, "name")
	if name == "" {
		return fail("Habit name is required.")
	}

	frequency := strArg(args, "frequency")
	if frequency == "" {
		frequency = domain.FrequencyDaily
	}
	if !domain.ValidFrequency(frequency) {
		return fail(fmt.Sprintf("Invalid frequency %q. Use daily, weekly or monthly.", frequency))
	}

	habit := &domain.Habit{
		UserID:      userID,
		Name:        name,
		Description: strArg(args, "description"),
		Frequency:   frequency,
		Color:       strArg(args, "color"),
		Icon:        strArg(args, "icon"),
	}

	created, err := e.repos.Habits.Create(ctx, habit)
	if err != nil {
		return storeFail(err, "Failed to create the habit.")
	}
	return succeed(fmt.Sprintf("Habit '%s' created.", created.Name), created)
}

func (e *Executor) updateHabit(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "habit_id")
	if id == "" {
		return fail("habit_id is required to update a habit.")
	}

	habit, err := e.repos.Habits.GetByID(ctx, userID, id)
	if err != nil {
		return storeFail(err, "Failed to load the habit.")
	}

	if hasArg(args, "name") {
		name := strArg(args, "name")
		if name == "" {
			return fail("Habit name must not be empty.")
		}
		habit.Name = name
	}
	if hasArg(args, "description") {
		habit.Description = strArg(args, "description")
	}
	if hasArg(args, "frequency") {
		frequency := strArg(args, "frequency")
		if !domain.ValidFrequency(frequency) {
			return fail(fmt.Sprintf("Invalid frequency %q. Use daily, weekly or monthly.", frequency))
		}
		habit.Frequency = frequency
	}
	if hasArg(args, "color") {
		habit.Color = strArg(args, "color")
	}
	if hasArg(args, "icon") {
		habit.Icon = strArg(args, "icon")
	}

	if err := e.repos.Habits.Update(ctx, habit); err != nil {
		return storeFail(err, "Failed to update the habit.")
	}
	return succeed(fmt.Sprintf("Habit '%s' updated.", habit.Name), habit)
}

func (e *Executor) deleteHabit(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "habit_id")
	if id == "" {
		return fail("habit_id is required to delete a habit.")
	}
	if err := e.repos.Habits.Delete(ctx, userID, id); err != nil {
		return storeFail(err, "Failed to delete the habit.")
	}
	return succeed("Habit deleted.", nil)
}

// toggleHabitToday flips today's completion mark. Repeating the call
// restores the previous state, so a stray double invocation is harmless.
func (e *Executor) toggleHabitToday(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "habit_id")
	if id == "" {
		return fail("habit_id is required to toggle a habit.")
	}

	habit, err := e.repos.Habits.GetByID(ctx, userID, id)
	if err != nil {
		return storeFail(err, "Failed to load the habit.")
	}

	today := todayStamp()
	existing, err := e.repos.Habits.GetCompletion(ctx, userID, id, today)
	if err != nil {
		return fail("Failed to check today's completion.")
	}

	if existing != nil {
		if err := e.repos.Habits.DeleteCompletion(ctx, userID, id, today); err != nil {
			return fail("Failed to unmark the habit for today.")
		}
		return succeed(fmt.Sprintf("Habit '%s' unmarked for today.", habit.Name), nil)
	}

	completion, err := e.repos.Habits.CreateCompletion(ctx, &domain.HabitCompletion{
		HabitID: id,
		UserID:  userID,
		Date:    today,
	})
	if err != nil {
		return fail("Failed to mark the habit for today.")
	}
	return succeed(fmt.Sprintf("Habit '%s' marked as done for today.", habit.Name), completion)
}

func (e *Executor) listHabits(ctx context.Context, userID string) domain.ToolResult {
	habits, err := e.repos.Habits.List(ctx, userID)
	if err != nil {
		return fail("Failed to list habits.")
	}
	if len(habits) == 0 {
		return succeed("No habits found.", habits)
	}

	completions, err := e.repos.Habits.ListCompletions(ctx, userID, todayStamp())
	if err != nil {
		return fail("Failed to load today's completions.")
	}
	doneToday := make(map[string]bool, len(completions))
	for _, c := range completions {
		doneToday[c.HabitID] = true
	}

	type habitStatus struct {
		domain.Habit
		DoneToday bool `json:"done_today"`
	}
	out := make([]habitStatus, 0, len(habits))
	for _, h := range habits {
		out = append(out, habitStatus{Habit: h, DoneToday: doneToday[h.ID]})
	}
	return succeed(fmt.Sprintf("Found %d habit(s).", len(out)), out)
}
