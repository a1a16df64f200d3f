package assistant

import (
	"context"
	"fmt"

	"github.com/lifedesk/backend/domain"
)

func (e *Executor) manageClients(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	switch strArg(args, "action") {
	case "create":
		return e.createClient(ctx, userID, args)
	case "update":
		return e.updateClient(ctx, userID, args)
	case "delete":
		return e.deleteClient(ctx, userID, args)
	case "list":
		return e.listClients(ctx, userID, args)
	default:
		return fail("Unknown action for manage_clients. Use create, update, delete or list.")
	}
}

func (e *Executor) createClient(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	name := strArg(args, "name")
	if name == "" {
		return fail("Client name is required.")
	}

	status := strArg(args, "status")
	if status == "" {
		status = domain.ClientStatusLead
	}
	if !domain.ValidClientStatus(status) {
		return fail(fmt.Sprintf("Invalid client status %q. Use lead, active, inactive, past or partner.", status))
	}

	client := &domain.Client{
		UserID:  userID,
		Name:    name,
		Email:   strArg(args, "email"),
		Phone:   strArg(args, "phone"),
		Company: strArg(args, "company"),
		Status:  status,
		Notes:   strArg(args, "notes"),
	}

	created, err := e.repos.Clients.Create(ctx, client)
	if err != nil {
		return storeFail(err, "Failed to create the client.")
	}
	return succeed(fmt.Sprintf("Client '%s' created.", created.Name), created)
}

func (e *Executor) updateClient(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "client_id")
	if id == "" {
		return fail("client_id is required to update a client.")
	}

	client, err := e.repos.Clients.GetByID(ctx, userID, id)
	if err != nil {
		return storeFail(err, "Failed to load the client.")
	}

	if hasArg(args, "name") {
		name := strArg(args, "name")
		if name == "" {
			return fail("Client name must not be empty.")
		}
		client.Name = name
	}
	if hasArg(args, "email") {
		client.Email = strArg(args, "email")
	}
	if hasArg(args, "phone") {
		client.Phone = strArg(args, "phone")
	}
	if hasArg(args, "company") {
		client.Company = strArg(args, "company")
	}
	if hasArg(args, "status") {
		status := strArg(args, "status")
		if !domain.ValidClientStatus(status) {
			return fail(fmt.Sprintf("Invalid client status %q. Use lead, active, inactive, past or partner.", status))
		}
		client.Status = status
	}
	if hasArg(args, "notes") {
		client.Notes = strArg(args, "notes")
	}

	if err := e.repos.Clients.Update(ctx, client); err != nil {
		return storeFail(err, "Failed to update the client.")
	}
	return succeed(fmt.Sprintf("Client '%s' updated.", client.Name), client)
}

func (e *Executor) deleteClient(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "client_id")
	if id == "" {
		return fail("client_id is required to delete a client.")
	}
	if err := e.repos.Clients.Delete(ctx, userID, id); err != nil {
		return storeFail(err, "Failed to delete the client.")
	}
	return succeed("Client deleted.", nil)
}

func (e *Executor) listClients(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	clients, err := e.repos.Clients.List(ctx, userID, strArg(args, "status"))
	if err != nil {
		return fail("Failed to list clients.")
	}
	if len(clients) == 0 {
		return succeed("No clients found.", clients)
	}
	return succeed(fmt.Sprintf("Found %d client(s).", len(clients)), clients)
}
