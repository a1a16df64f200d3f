package assistant

import (
	"context"
	"fmt"

	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/repository"
)

func (e *Executor) manageMoviesSeries(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	switch strArg(args, "action") {
	case "create":
		return e.createMovieSeries(ctx, userID, args)
	case "update":
		return e.updateMovieSeries(ctx, userID, args)
	case "delete":
		return e.deleteMovieSeries(ctx, userID, args)
	case "list":
		return e.listMoviesSeries(ctx, userID, args)
	default:
		return fail("Unknown action for manage_movies_series. Use create, update, delete or list.")
	}
}

func (e *Executor) createMovieSeries(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	name := strArg(args, "name")
	if name == "" {
		return fail("Name is required.")
	}

	itemType := strArg(args, "type")
	if itemType == "" {
		itemType = domain.MediaMovie
	}
	if !domain.ValidMovieSeriesType(itemType) {
		return fail(fmt.Sprintf("Invalid type %q. Use movie or series.", itemType))
	}

	status := strArg(args, "status")
	if status == "" {
		status = domain.WatchStatusToWatch
	}
	if !domain.ValidWatchStatus(status) {
		return fail(fmt.Sprintf("Invalid status %q. Use to-watch, watching or watched.", status))
	}

	item := &domain.MovieSeries{
		UserID:      userID,
		Name:        name,
		Type:        itemType,
		Status:      status,
		Description: strArg(args, "description"),
	}
	created, err := e.repos.MoviesSeries.Create(ctx, item)
	if err != nil {
		return storeFail(err, "Failed to add the item to the watch list.")
	}
	return succeed(fmt.Sprintf("'%s' added to the watch list.", created.Name), created)
}

func (e *Executor) updateMovieSeries(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "item_id")
	if id == "" {
		return fail("item_id is required to update a watch-list item.")
	}

	item, err := e.repos.MoviesSeries.GetByID(ctx, userID, id)
	if err != nil {
		return storeFail(err, "Failed to load the item.")
	}

	if hasArg(args, "name") {
		name := strArg(args, "name")
		if name == "" {
			return fail("Name must not be empty.")
		}
		item.Name = name
	}
	if hasArg(args, "type") {
		itemType := strArg(args, "type")
		if !domain.ValidMovieSeriesType(itemType) {
			return fail(fmt.Sprintf("Invalid type %q. Use movie or series.", itemType))
		}
		item.Type = itemType
	}
	if hasArg(args, "status") {
		status := strArg(args, "status")
		if !domain.ValidWatchStatus(status) {
			return fail(fmt.Sprintf("Invalid status %q. Use to-watch, watching or watched.", status))
		}
		item.Status = status
	}
	if hasArg(args, "description") {
		item.Description = strArg(args, "description")
	}

	if err := e.repos.MoviesSeries.Update(ctx, item); err != nil {
		return storeFail(err, "Failed to update the item.")
	}
	return succeed(fmt.Sprintf("'%s' updated.", item.Name), item)
}

func (e *Executor) deleteMovieSeries(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "item_id")
	if id == "" {
		return fail("item_id is required to delete a watch-list item.")
	}
	if err := e.repos.MoviesSeries.Delete(ctx, userID, id); err != nil {
		return storeFail(err, "Failed to delete the item.")
	}
	return succeed("Watch-list item deleted.", nil)
}

func (e *Executor) listMoviesSeries(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	items, err := e.repos.MoviesSeries.List(ctx, repository.MediaFilter{
		UserID: userID,
		Type:   strArg(args, "type"),
		Status: strArg(args, "status"),
		Limit:  50,
	})
	if err != nil {
		return fail("Failed to list the watch list.")
	}
	if len(items) == 0 {
		return succeed("The watch list is empty.", items)
	}
	return succeed(fmt.Sprintf("Found %d item(s).", len(items)), items)
}

func (e *Executor) manageBooksPodcasts(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	switch strArg(args, "action") {
	case "create":
		return e.createBookPodcast(ctx, userID, args)
	case "update":
		return e.updateBookPodcast(ctx, userID, args)
	case "delete":
		return e.deleteBookPodcast(ctx, userID, args)
	case "list":
		return e.listBooksPodcasts(ctx, userID, args)
	default:
		return fail("Unknown action for manage_books_podcasts. Use create, update, delete or list.")
	}
}

func (e *Executor) createBookPodcast(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	name := strArg(args, "name")
	if name == "" {
		return fail("Name is required.")
	}

	itemType := strArg(args, "type")
	if itemType == "" {
		itemType = domain.MediaBook
	}
	if !domain.ValidBookPodcastType(itemType) {
		return fail(fmt.Sprintf("Invalid type %q. Use book or podcast.", itemType))
	}

	status := strArg(args, "status")
	if status == "" {
		status = domain.ConsumeStatusToConsume
	}
	if !domain.ValidConsumeStatus(status) {
		return fail(fmt.Sprintf("Invalid status %q. Use to-consume, consuming or consumed.", status))
	}

	item := &domain.BookPodcast{
		UserID: userID,
		Name:   name,
		Type:   itemType,
		Status: status,
		URL:    strArg(args, "url"),
	}
	created, err := e.repos.BooksPodcasts.Create(ctx, item)
	if err != nil {
		return storeFail(err, "Failed to add the item to the reading list.")
	}
	return succeed(fmt.Sprintf("'%s' added to the reading list.", created.Name), created)
}

func (e *Executor) updateBookPodcast(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "item_id")
	if id == "" {
		return fail("item_id is required to update a reading-list item.")
	}

	item, err := e.repos.BooksPodcasts.GetByID(ctx, userID, id)
	if err != nil {
		return storeFail(err, "Failed to load the item.")
	}

	if hasArg(args, "name") {
		name := strArg(args, "name")
		if name == "" {
			return fail("Name must not be empty.")
		}
		item.Name = name
	}
	if hasArg(args, "type") {
		itemType := strArg(args, "type")
		if !domain.ValidBookPodcastType(itemType) {
			return fail(fmt.Sprintf("Invalid type %q. Use book or podcast.", itemType))
		}
		item.Type = itemType
	}
	if hasArg(args, "status") {
		status := strArg(args, "status")
		if !domain.ValidConsumeStatus(status) {
			return fail(fmt.Sprintf("Invalid status %q. Use to-consume, consuming or consumed.", status))
		}
		item.Status = status
	}
	if hasArg(args, "url") {
		item.URL = strArg(args, "url")
	}

	if err := e.repos.BooksPodcasts.Update(ctx, item); err != nil {
		return storeFail(err, "Failed to update the item.")
	}
	return succeed(fmt.Sprintf("'%s' updated.", item.Name), item)
}

func (e *Executor) deleteBookPodcast(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "item_id")
	if id == "" {
		return fail("item_id is required to delete a reading-list item.")
	}
	if err := e.repos.BooksPodcasts.Delete(ctx, userID, id); err != nil {
		return storeFail(err, "Failed to delete the item.")
	}
	return succeed("Reading-list item deleted.", nil)
}

func (e *Executor) listBooksPodcasts(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	items, err := e.repos.BooksPodcasts.List(ctx, repository.MediaFilter{
		UserID: userID,
		Type:   strArg(args, "type"),
		Status: strArg(args, "status"),
		Limit:  50,
	})
	if err != nil {
		return fail("Failed to list the reading list.")
	}
	if len(items) == 0 {
		return succeed("The reading list is empty.", items)
	}
	return succeed(fmt.Sprintf("Found %d item(s).", len(items)), items)
}
