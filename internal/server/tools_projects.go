package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/campbridge/freedcamp-mcp/internal/freedcamp"
)

func (h *Handler) registerProjectTools(s *server.MCPServer) {
	h.addTool(s, mcp.NewTool("get_projects",
		mcp.WithDescription("Get all Freedcamp projects grouped by their group name. Usually the first tool to call; returns a compact summary unless include_details is set."),
		mcp.WithBoolean("include_recent", mcp.Description("Include recently visited project ids"), mcp.DefaultBool(false)),
		mcp.WithBoolean("include_details", mcp.Description("Return the full JSON envelope instead of a summary"), mcp.DefaultBool(false)),
	), h.getProjects)

	h.addTool(s, mcp.NewTool("get_project_details",
		mcp.WithDescription("Get detailed information about a specific project, including members"),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("The project id")),
	), h.getProjectDetails)

	h.addTool(s, mcp.NewTool("create_project",
		mcp.WithDescription("Create a new project in Freedcamp"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Project name")),
		mcp.WithString("description", mcp.Description("Project description")),
		mcp.WithString("color", mcp.Description("Project color")),
		mcp.WithString("group_id", mcp.Description("Group id where the project will be created")),
		mcp.WithString("group_name", mcp.Description("Group name where the project will be created")),
		mcp.WithString("todo_view_type", mcp.Description("Type of todo view"), mcp.DefaultString("default")),
		mcp.WithArray("users_to_add", mcp.Description("Users to add, objects with user_id/email/role_id"),
			mcp.Items(map[string]any{"type": "object"})),
	), h.createProject)

	h.addTool(s, mcp.NewTool("update_project",
		mcp.WithDescription("Update an existing project, its fields and/or its member list"),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("The project id to update")),
		mcp.WithString("name", mcp.Description("New project name")),
		mcp.WithString("description", mcp.Description("New project description")),
		mcp.WithString("color", mcp.Description("New project color")),
		mcp.WithString("group_id", mcp.Description("New group id")),
		mcp.WithString("group_name", mcp.Description("New group name")),
		mcp.WithBoolean("active", mcp.Description("New active status")),
		mcp.WithArray("users_to_add", mcp.Description("Users to add"), mcp.Items(map[string]any{"type": "object"})),
		mcp.WithArray("users_to_update", mcp.Description("Users to update"), mcp.Items(map[string]any{"type": "object"})),
		mcp.WithArray("users_to_delete", mcp.Description("Users to remove"), mcp.Items(map[string]any{"type": "object"})),
		mcp.WithBoolean("only_update_users", mcp.Description("Only change the member list"), mcp.DefaultBool(false)),
	), h.updateProject)

	h.addTool(s, mcp.NewTool("delete_project",
		mcp.WithDescription("Delete a project from Freedcamp"),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("The project id to delete")),
	), h.deleteProject)
}

func (h *Handler) getProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := h.client.ListProjects(ctx, req.GetBool("include_recent", false))
	if err != nil {
		return errResult(err), nil
	}
	if req.GetBool("include_details", false) {
		return okResult(list, ""), nil
	}
	return mcp.NewToolResultText(projectsSummary(list)), nil
}

func (h *Handler) getProjectDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return errResult(err), nil
	}
	project, err := h.client.GetProject(ctx, projectID)
	if err != nil {
		return errResult(err), nil
	}
	return okResult(project, ""), nil
}

func (h *Handler) createProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return errResult(err), nil
	}
	usersToAdd, err := memberSlice(req, "users_to_add")
	if err != nil {
		return errResult(err), nil
	}

	created, err := h.client.CreateProject(ctx, freedcamp.CreateProjectParams{
		Name:         name,
		Description:  req.GetString("description", ""),
		Color:        req.GetString("color", ""),
		GroupID:      req.GetString("group_id", ""),
		GroupName:    req.GetString("group_name", ""),
		TodoViewType: req.GetString("todo_view_type", "default"),
		UsersToAdd:   usersToAdd,
	})
	if err != nil {
		return errResult(err), nil
	}
	return okResult(created, "Project created successfully"), nil
}

func (h *Handler) updateProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return errResult(err), nil
	}

	params := freedcamp.UpdateProjectParams{
		OnlyUpdateUsers: req.GetBool("only_update_users", false),
	}
	if params.Name, err = optString(req, "name"); err != nil {
		return errResult(err), nil
	}
	if params.Description, err = optString(req, "description"); err != nil {
		return errResult(err), nil
	}
	if params.Color, err = optString(req, "color"); err != nil {
		return errResult(err), nil
	}
	if params.GroupID, err = optString(req, "group_id"); err != nil {
		return errResult(err), nil
	}
	if params.GroupName, err = optString(req, "group_name"); err != nil {
		return errResult(err), nil
	}
	if params.Active, err = optBool(req, "active"); err != nil {
		return errResult(err), nil
	}
	if params.UsersToAdd, err = memberSlice(req, "users_to_add"); err != nil {
		return errResult(err), nil
	}
	if params.UsersToUpdate, err = memberSlice(req, "users_to_update"); err != nil {
		return errResult(err), nil
	}
	if params.UsersToDelete, err = memberSlice(req, "users_to_delete"); err != nil {
		return errResult(err), nil
	}

	updated, err := h.client.UpdateProject(ctx, projectID, params)
	if err != nil {
		return errResult(err), nil
	}
	return okResult(updated, "Project updated successfully"), nil
}

func (h *Handler) deleteProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return errResult(err), nil
	}
	if err := h.client.DeleteProject(ctx, projectID); err != nil {
		return errResult(err), nil
	}
	return okResult(nil, "Project deleted successfully"), nil
}
