package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (h *Handler) registerFileTools(s *server.MCPServer) {
	h.addTool(s, mcp.NewTool("get_file_details",
		mcp.WithDescription("Get detailed information about a file"),
		mcp.WithString("file_id", mcp.Required(), mcp.Description("The file id")),
	), h.getFileDetails)

	h.addTool(s, mcp.NewTool("delete_file",
		mcp.WithDescription("Delete a file"),
		mcp.WithString("file_id", mcp.Required(), mcp.Description("The file id to delete")),
	), h.deleteFile)
}

func (h *Handler) getFileDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fileID, err := req.RequireString("file_id")
	if err != nil {
		return errResult(err), nil
	}
	file, err := h.client.GetFile(ctx, fileID)
	if err != nil {
		return errResult(err), nil
	}
	return okResult(file, ""), nil
}

func (h *Handler) deleteFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fileID, err := req.RequireString("file_id")
	if err != nil {
		return errResult(err), nil
	}
	if err := h.client.DeleteFile(ctx, fileID); err != nil {
		return errResult(err), nil
	}
	return okResult(nil, "File deleted successfully"), nil
}
