// Package server wires the Freedcamp facade into an MCP tool surface.
// It is the composition root: tool definitions, parameter handling, and
// envelope rendering live here; all remote behavior lives in the facade.
package server

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/campbridge/freedcamp-mcp/internal/freedcamp"
)

// Version is set at build time via ldflags.
var Version = "dev"

const instructions = `Freedcamp Project Management MCP Server

Workflow rules:
1. Always start by getting project context: get_projects() for available
   projects, get_project_details(project_id) for specifics. Never assume
   project ids - look them up first.
2. For task operations: get_projects() first, then
   get_project_tasks(project_id) for existing tasks, get_users() for user
   ids, then create/update tasks with proper ids.
3. When creating tasks: project_id is required, look up user ids before
   assigning, use YYYY-MM-DD dates.
4. User assignments need user ids from get_users(), never names.
5. On "not found" errors, re-run the relevant lookup tool and retry with a
   verified id.

This system requires explicit id lookups - never guess or assume ids exist.`

// Handler carries the dependencies every tool shares.
type Handler struct {
	client *freedcamp.Client
	logger *zap.Logger
}

// New builds the MCP server with the full Freedcamp tool surface
// registered.
func New(client *freedcamp.Client, logger *zap.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"freedcamp-mcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	h := &Handler{client: client, logger: logger}
	h.registerWorkflowTools(s)
	h.registerProjectTools(s)
	h.registerTaskTools(s)
	h.registerUserTools(s)
	h.registerCommentTools(s)
	h.registerFileTools(s)
	return s
}

// instrument logs every invocation with a request id and duration. Errors
// surfaced through the envelope are logged here too, since handlers never
// return protocol-level errors for remote failures.
func (h *Handler) instrument(name string, fn server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.NewString()
		start := time.Now()

		result, err := fn(ctx, req)

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("tool", name),
			zap.Duration("duration", time.Since(start)),
		}
		switch {
		case err != nil:
			h.logger.Error("tool call failed", append(fields, zap.Error(err))...)
		case result != nil && result.IsError:
			h.logger.Warn("tool call returned error envelope", fields...)
		default:
			h.logger.Debug("tool call completed", fields...)
		}
		return result, err
	}
}

func (h *Handler) addTool(s *server.MCPServer, tool mcp.Tool, fn server.ToolHandlerFunc) {
	s.AddTool(tool, h.instrument(tool.Name, fn))
}
