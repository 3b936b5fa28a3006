package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/campbridge/freedcamp-mcp/internal/freedcamp"
)

func (h *Handler) registerUserTools(s *server.MCPServer) {
	h.addTool(s, mcp.NewTool("get_users",
		mcp.WithDescription("Get all users in the Freedcamp workspace. Call this before assigning tasks; use the user_id field, not names."),
		mcp.WithBoolean("include_details", mcp.Description("Return the full JSON envelope instead of a summary"), mcp.DefaultBool(false)),
	), h.getUsers)

	h.addTool(s, mcp.NewTool("get_current_user",
		mcp.WithDescription("Get current user information"),
	), h.getCurrentUser)

	h.addTool(s, mcp.NewTool("get_user_details",
		mcp.WithDescription("Get detailed information about a specific user"),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("The user id")),
	), h.getUserDetails)

	h.addTool(s, mcp.NewTool("update_current_user",
		mcp.WithDescription("Update current user information. Changing email or password requires confirmation_password and may rotate the authentication token."),
		mcp.WithString("email", mcp.Description("New email address")),
		mcp.WithString("password", mcp.Description("New password")),
		mcp.WithString("first_name", mcp.Description("New first name")),
		mcp.WithString("last_name", mcp.Description("New last name")),
		mcp.WithString("confirmation_password", mcp.Description("Current password, required when changing email/password")),
		mcp.WithString("timezone", mcp.Description("New timezone")),
	), h.updateCurrentUser)
}

func (h *Handler) getUsers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	users, err := h.client.ListUsers(ctx)
	if err != nil {
		return errResult(err), nil
	}
	if req.GetBool("include_details", false) {
		return okResult(users, ""), nil
	}
	return mcp.NewToolResultText(usersSummary(users)), nil
}

func (h *Handler) getCurrentUser(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := h.client.GetCurrentUser(ctx)
	if err != nil {
		return errResult(err), nil
	}
	return okResult(user, ""), nil
}

func (h *Handler) getUserDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil {
		return errResult(err), nil
	}
	user, err := h.client.GetUser(ctx, userID)
	if err != nil {
		return errResult(err), nil
	}
	return okResult(user, ""), nil
}

func (h *Handler) updateCurrentUser(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	update, err := h.client.UpdateCurrentUser(ctx, freedcamp.UpdateCurrentUserParams{
		Email:                req.GetString("email", ""),
		Password:             req.GetString("password", ""),
		FirstName:            req.GetString("first_name", ""),
		LastName:             req.GetString("last_name", ""),
		ConfirmationPassword: req.GetString("confirmation_password", ""),
		Timezone:             req.GetString("timezone", ""),
	})
	if err != nil {
		return errResult(err), nil
	}

	message := "User updated successfully"
	if update.NewToken != "" {
		message += " - new authentication token provided"
	}
	return okResult(update, message), nil
}
