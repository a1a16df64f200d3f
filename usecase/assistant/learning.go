package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/lifedesk/backend/domain"
)

func (e *Executor) manageCourses(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	switch strArg(args, "action") {
	case "create":
		return e.createCourse(ctx, userID, args)
	case "update":
		return e.updateCourse(ctx, userID, args)
	case "delete":
		return e.deleteCourse(ctx, userID, args)
	case "list":
		return e.listCourses(ctx, userID, args)
	default:
		return fail("Unknown action for manage_courses. Use create, update, delete or list.")
	}
}

func (e *Executor) createCourse(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	title := strArg(args, "title")
	if title == "" {
		return fail("Course title is required.")
	}

	status := strArg(args, "status")
	if status == "" {
		status = domain.CourseStatusNotStarted
	}
	if !domain.ValidCourseStatus(status) {
		return fail(fmt.Sprintf("Invalid course status %q. Use not-started, in-progress or completed.", status))
	}

	targetDate, ok := optionalDate(args, "target_date")
	if !ok {
		return fail("Target date must be in YYYY-MM-DD format.")
	}

	course := &domain.Course{
		UserID:     userID,
		Title:      title,
		Platform:   strArg(args, "platform"),
		Instructor: strArg(args, "instructor"),
		Status:     status,
		Notes:      strArg(args, "notes"),
		TargetDate: targetDate,
	}

	created, err := e.repos.Courses.Create(ctx, course)
	if err != nil {
		return storeFail(err, "Failed to create the course.")
	}
	// The id is echoed so lessons can be attached within the same turn.
	return succeed(fmt.Sprintf("Course '%s' created with id %s.", created.Title, created.ID), created)
}

func (e *Executor) updateCourse(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "course_id")
	if id == "" {
		return fail("course_id is required to update a course.")
	}

	course, err := e.repos.Courses.GetByID(ctx, userID, id)
	if err != nil {
		return storeFail(err, "Failed to load the course.")
	}

	if hasArg(args, "title") {
		title := strArg(args, "title")
		if title == "" {
			return fail("Course title must not be empty.")
		}
		course.Title = title
	}
	if hasArg(args, "platform") {
		course.Platform = strArg(args, "platform")
	}
	if hasArg(args, "instructor") {
		course.Instructor = strArg(args, "instructor")
	}
	if hasArg(args, "status") {
		status := strArg(args, "status")
		if !domain.ValidCourseStatus(status) {
			return fail(fmt.Sprintf("Invalid course status %q. Use not-started, in-progress or completed.", status))
		}
		course.Status = status
	}
	if hasArg(args, "notes") {
		course.Notes = strArg(args, "notes")
	}
	if hasArg(args, "target_date") {
		targetDate, ok := optionalDate(args, "target_date")
		if !ok {
			return fail("Target date must be in YYYY-MM-DD format.")
		}
		course.TargetDate = targetDate
	}

	if err := e.repos.Courses.Update(ctx, course); err != nil {
		return storeFail(err, "Failed to update the course.")
	}
	return succeed(fmt.Sprintf("Course '%s' updated.", course.Title), course)
}

// deleteCourse removes the course together with its lessons.
func (e *Executor) deleteCourse(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "course_id")
	if id == "" {
		return fail("course_id is required to delete a course.")
	}

	if _, err := e.repos.Courses.GetByID(ctx, userID, id); err != nil {
		return storeFail(err, "Failed to load the course.")
	}
	if err := e.repos.Lessons.DeleteByCourse(ctx, userID, id); err != nil {
		return fail("Failed to delete the course lessons.")
	}
	if err := e.repos.Courses.Delete(ctx, userID, id); err != nil {
		return storeFail(err, "Failed to delete the course.")
	}
	return succeed("Course and its lessons deleted.", nil)
}

func (e *Executor) listCourses(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	courses, err := e.repos.Courses.List(ctx, userID, strArg(args, "status"))
	if err != nil {
		return fail("Failed to list courses.")
	}
	if len(courses) == 0 {
		return succeed("No courses found.", courses)
	}
	return succeed(fmt.Sprintf("Found %d course(s).", len(courses)), courses)
}

func (e *Executor) manageLessons(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	switch strArg(args, "action") {
	case "create":
		return e.createLesson(ctx, userID, args)
	case "update":
		return e.updateLesson(ctx, userID, args)
	case "complete":
		return e.completeLesson(ctx, userID, args)
	case "delete":
		return e.deleteLesson(ctx, userID, args)
	case "list":
		return e.listLessons(ctx, userID, args)
	default:
		return fail("Unknown action for manage_lessons. Use create, update, complete, delete or list.")
	}
}

func (e *Executor) createLesson(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	courseID := strArg(args, "course_id")
	if courseID == "" {
		return fail("course_id is required to create a lesson. Resolve the course with search_course first.")
	}
	title := strArg(args, "title")
	if title == "" {
		return fail("Lesson title is required.")
	}

	if _, err := e.repos.Courses.GetByID(ctx, userID, courseID); err != nil {
		return storeFail(err, "Failed to load the course.")
	}

	maxOrder, err := e.repos.Lessons.MaxSortOrder(ctx, userID, courseID)
	if err != nil {
		return fail("Failed to determine the lesson position.")
	}

	lesson := &domain.Lesson{
		UserID:      userID,
		CourseID:    courseID,
		Title:       title,
		Description: strArg(args, "description"),
		Section:     strArg(args, "section"),
		SortOrder:   maxOrder + 1,
	}
	if minutes, supplied := intArg(args, "duration_minutes"); supplied {
		if minutes < 0 {
			return fail("Lesson duration must not be negative.")
		}
		lesson.DurationMinutes = &minutes
	}

	created, err := e.repos.Lessons.Create(ctx, lesson)
	if err != nil {
		return storeFail(err, "Failed to create the lesson.")
	}
	return succeed(fmt.Sprintf("Lesson '%s' added at position %d.", created.Title, created.SortOrder), created)
}

func (e *Executor) updateLesson(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "lesson_id")
	if id == "" {
		return fail("lesson_id is required to update a lesson.")
	}

	lesson, err := e.repos.Lessons.GetByID(ctx, userID, id)
	if err != nil {
		return storeFail(err, "Failed to load the lesson.")
	}

	if hasArg(args, "title") {
		title := strArg(args, "title")
		if title == "" {
			return fail("Lesson title must not be empty.")
		}
		lesson.Title = title
	}
	if hasArg(args, "description") {
		lesson.Description = strArg(args, "description")
	}
	if hasArg(args, "section") {
		lesson.Section = strArg(args, "section")
	}
	if minutes, supplied := intArg(args, "duration_minutes"); supplied {
		if minutes < 0 {
			return fail("Lesson duration must not be negative.")
		}
		lesson.DurationMinutes = &minutes
	}

	if err := e.repos.Lessons.Update(ctx, lesson); err != nil {
		return storeFail(err, "Failed to update the lesson.")
	}
	return succeed(fmt.Sprintf("Lesson '%s' updated.", lesson.Title), lesson)
}

func (e *Executor) completeLesson(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "lesson_id")
	if id == "" {
		return fail("lesson_id is required to complete a lesson.")
	}

	lesson, err := e.repos.Lessons.GetByID(ctx, userID, id)
	if err != nil {
		return storeFail(err, "Failed to load the lesson.")
	}

	now := time.Now().UTC()
	lesson.IsCompleted = true
	lesson.CompletedAt = &now
	if err := e.repos.Lessons.Update(ctx, lesson); err != nil {
		return storeFail(err, "Failed to complete the lesson.")
	}
	return succeed(fmt.Sprintf("Lesson '%s' marked as completed.", lesson.Title), lesson)
}

func (e *Executor) deleteLesson(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "lesson_id")
	if id == "" {
		return fail("lesson_id is required to delete a lesson.")
	}
	if err := e.repos.Lessons.Delete(ctx, userID, id); err != nil {
		return storeFail(err, "Failed to delete the lesson.")
	}
	return succeed("Lesson deleted.", nil)
}

func (e *Executor) listLessons(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	courseID := strArg(args, "course_id")
	if courseID == "" {
		return fail("course_id is required to list lessons. Resolve the course with search_course first.")
	}
	if _, err := e.repos.Courses.GetByID(ctx, userID, courseID); err != nil {
		return storeFail(err, "Failed to load the course.")
	}

	lessons, err := e.repos.Lessons.ListByCourse(ctx, userID, courseID)
	if err != nil {
		return fail("Failed to list lessons.")
	}
	if len(lessons) == 0 {
		return succeed("The course has no lessons yet.", lessons)
	}

	completed := 0
	for _, l := range lessons {
		if l.IsCompleted {
			completed++
		}
	}
	return succeed(
		fmt.Sprintf("Found %d lesson(s), %d completed.", len(lessons), completed),
		map[string]interface{}{"lessons": lessons, "completed": completed, "total": len(lessons)},
	)
}
