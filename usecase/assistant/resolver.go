package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/lifedesk/backend/domain"
)

const searchLimit = 5

// searchProject resolves a title fragment to project ids. With zero hits
// the model is told to ask the user; with several hits an exact
// case-insensitive title match wins, otherwise every candidate is
// returned and the model must not pick one on its own.
func (e *Executor) searchProject(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	query := strArg(args, "query")
	if query == "" {
		return fail("A search query is required.")
	}

	projects, err := e.repos.Projects.SearchByTitle(ctx, userID, query, searchLimit)
	if err != nil {
		return fail("Project search failed.")
	}

	switch len(projects) {
	case 0:
		return fail(fmt.Sprintf("No project matches %q. Ask the user for the exact project name or offer to create it.", query))
	case 1:
		p := projects[0]
		return succeed(fmt.Sprintf("Found project '%s' with id %s.", p.Title, p.ID), p)
	}

	for _, p := range projects {
		if strings.EqualFold(p.Title, query) {
			return succeed(fmt.Sprintf("Found project '%s' with id %s.", p.Title, p.ID), p)
		}
	}

	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, fmt.Sprintf("'%s' (%s)", p.Title, p.ID))
	}
	return succeed(
		fmt.Sprintf("Found %d projects matching %q: %s. Ask the user which one they mean.", len(projects), query, strings.Join(names, ", ")),
		projects,
	)
}

// searchCourse mirrors searchProject for the learning domain.
func (e *Executor) searchCourse(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	query := strArg(args, "query")
	if query == "" {
		return fail("A search query is required.")
	}

	courses, err := e.repos.Courses.SearchByTitle(ctx, userID, query, searchLimit)
	if err != nil {
		return fail("Course search failed.")
	}

	switch len(courses) {
	case 0:
		return fail(fmt.Sprintf("No course matches %q. Ask the user for the exact course name or offer to create it.", query))
	case 1:
		c := courses[0]
		return succeed(fmt.Sprintf("Found course '%s' with id %s.", c.Title, c.ID), c)
	}

	for _, c := range courses {
		if strings.EqualFold(c.Title, query) {
			return succeed(fmt.Sprintf("Found course '%s' with id %s.", c.Title, c.ID), c)
		}
	}

	names := make([]string, 0, len(courses))
	for _, c := range courses {
		names = append(names, fmt.Sprintf("'%s' (%s)", c.Title, c.ID))
	}
	return succeed(
		fmt.Sprintf("Found %d courses matching %q: %s. Ask the user which one they mean.", len(courses), query, strings.Join(names, ", ")),
		courses,
	)
}
