package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/campbridge/freedcamp-mcp/internal/freedcamp"
)

func (h *Handler) registerCommentTools(s *server.MCPServer) {
	h.addTool(s, mcp.NewTool("add_comment",
		mcp.WithDescription("Add a comment to an item (task, file, etc.)"),
		mcp.WithString("item_id", mcp.Required(), mcp.Description("The item id to comment on")),
		mcp.WithString("app_id", mcp.Description("The application id the item belongs to (2=tasks)"), mcp.DefaultString(freedcamp.AppIDTasks)),
		mcp.WithString("description", mcp.Required(), mcp.Description("The comment text, HTML supported")),
		mcp.WithArray("attached_file_ids", mcp.Description("File ids to attach"), mcp.Items(map[string]any{"type": "integer"})),
	), h.addComment)

	h.addTool(s, mcp.NewTool("update_comment",
		mcp.WithDescription("Update an existing comment"),
		mcp.WithString("comment_id", mcp.Required(), mcp.Description("The comment id to update")),
		mcp.WithString("description", mcp.Required(), mcp.Description("The new comment text, HTML supported")),
	), h.updateComment)

	h.addTool(s, mcp.NewTool("delete_comment",
		mcp.WithDescription("Delete a comment"),
		mcp.WithString("comment_id", mcp.Required(), mcp.Description("The comment id to delete")),
	), h.deleteComment)
}

func (h *Handler) addComment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	itemID, err := req.RequireString("item_id")
	if err != nil {
		return errResult(err), nil
	}
	description, err := req.RequireString("description")
	if err != nil {
		return errResult(err), nil
	}
	attachedIDs, err := intSlice(req, "attached_file_ids")
	if err != nil {
		return errResult(err), nil
	}

	comment, err := h.client.AddComment(ctx, freedcamp.AddCommentParams{
		ItemID:          itemID,
		AppID:           req.GetString("app_id", freedcamp.AppIDTasks),
		Description:     description,
		AttachedFileIDs: attachedIDs,
	})
	if err != nil {
		return errResult(err), nil
	}
	return okResult(comment, "Comment added successfully"), nil
}

func (h *Handler) updateComment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	commentID, err := req.RequireString("comment_id")
	if err != nil {
		return errResult(err), nil
	}
	description, err := req.RequireString("description")
	if err != nil {
		return errResult(err), nil
	}

	comment, err := h.client.UpdateComment(ctx, commentID, description)
	if err != nil {
		return errResult(err), nil
	}
	return okResult(comment, "Comment updated successfully"), nil
}

func (h *Handler) deleteComment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	commentID, err := req.RequireString("comment_id")
	if err != nil {
		return errResult(err), nil
	}
	if err := h.client.DeleteComment(ctx, commentID); err != nil {
		return errResult(err), nil
	}
	return okResult(nil, "Comment deleted successfully"), nil
}
