package assistant

import (
	"context"
	"fmt"

	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/repository"
)

func (e *Executor) manageNotes(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	switch strArg(args, "action") {
	case "create":
		return e.createNote(ctx, userID, args)
	case "update":
		return e.updateNote(ctx, userID, args)
	case "delete":
		return e.deleteNote(ctx, userID, args)
	case "list":
		return e.listNotes(ctx, userID, args)
	default:
		return fail("Unknown action for manage_notes. Use create, update, delete or list.")
	}
}

func (e *Executor) createNote(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	title := strArg(args, "title")
	if title == "" {
		return fail("Note title is required.")
	}

	folder := strArg(args, "folder")
	if folder == "" {
		folder = "General"
	}

	note := &domain.Note{
		UserID:  userID,
		Title:   title,
		Content: strArg(args, "content"),
		Folder:  folder,
	}
	if pinned, supplied := boolArg(args, "is_pinned"); supplied {
		note.IsPinned = pinned
	}

	created, err := e.repos.Notes.Create(ctx, note)
	if err != nil {
		return storeFail(err, "Failed to create the note.")
	}
	return succeed(fmt.Sprintf("Note '%s' created.", created.Title), created)
}

func (e *Executor) updateNote(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "note_id")
	if id == "" {
		return fail("note_id is required to update a note.")
	}

	note, err := e.repos.Notes.GetByID(ctx, userID, id)
	if err != nil {
		return storeFail(err, "Failed to load the note.")
	}

	if hasArg(args, "title") {
		title := strArg(args, "title")
		if title == "" {
			return fail("Note title must not be empty.")
		}
		note.Title = title
	}
	if hasArg(args, "content") {
		note.Content = strArg(args, "content")
	}
	if hasArg(args, "folder") {
		note.Folder = strArg(args, "folder")
	}
	if pinned, supplied := boolArg(args, "is_pinned"); supplied {
		note.IsPinned = pinned
	}

	if err := e.repos.Notes.Update(ctx, note); err != nil {
		return storeFail(err, "Failed to update the note.")
	}
	return succeed(fmt.Sprintf("Note '%s' updated.", note.Title), note)
}

func (e *Executor) deleteNote(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "note_id")
	if id == "" {
		return fail("note_id is required to delete a note.")
	}
	if err := e.repos.Notes.Delete(ctx, userID, id); err != nil {
		return storeFail(err, "Failed to delete the note.")
	}
	return succeed("Note deleted.", nil)
}

func (e *Executor) listNotes(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	notes, err := e.repos.Notes.List(ctx, repository.NoteFilter{
		UserID: userID,
		Folder: strArg(args, "folder"),
		Limit:  50,
	})
	if err != nil {
		return fail("Failed to list notes.")
	}
	if len(notes) == 0 {
		return succeed("No notes found.", notes)
	}
	return succeed(fmt.Sprintf("Found %d note(s).", len(notes)), notes)
}
