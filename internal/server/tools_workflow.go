package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var workflows = map[string]string{
	"general": `GENERAL WORKFLOW

1. Discovery (always start here):
   get_projects() - see all available projects
   get_users() - see all available users
   get_current_user() - understand the current user context
2. Project selection:
   use project names from get_projects() to identify the target project,
   then get_project_details(project_id). Never assume project ids.
3. Task operations:
   get_project_tasks(project_id) for existing tasks,
   get_user_tasks(user_id) for user workload,
   create_task() with proper project_id and user ids.
4. Id management:
   project ids come from get_projects(), user ids from get_users() (the
   user_id field, not names), task ids from listings or create responses.

Always look up ids before using them.`,

	"create_task": `TASK CREATION WORKFLOW

1. Prerequisites: get_projects() for the target project,
   get_project_details(project_id) to verify permissions,
   get_users() for assignee user ids.
2. Creation: create_task(title, project_id, ...). Required: title,
   project_id. Optional: description, assigned_to_id, due_date, priority.
3. Validation: get_task_details(task_id) to confirm, then check the task
   appears in get_project_tasks(project_id).`,

	"assign_users": `USER ASSIGNMENT WORKFLOW

1. get_users() and find the target user by full_name or email; extract the
   user_id field.
2. Assignment values: a user id, "0" (unassigned), or "-1" (everyone).
3. Verify with get_user_tasks(user_id) or get_task_details(task_id).

Never use user names directly - always convert to user_id first.`,

	"project_setup": `PROJECT SETUP WORKFLOW

1. Discovery: get_projects() for existing projects and groups,
   get_current_user() for permissions.
2. create_project(name, description, ...) - consider group_name, color,
   users_to_add.
3. Team setup: get_users(), then update_project(project_id, users_to_add).
4. Add initial tasks with create_task(), then verify with
   get_project_tasks(project_id) and get_project_details(project_id).`,
}

func (h *Handler) registerWorkflowTools(s *server.MCPServer) {
	h.addTool(s, mcp.NewTool("get_workflow_help",
		mcp.WithDescription("Get workflow instructions and best practices for using this Freedcamp MCP server"),
		mcp.WithString("task_type",
			mcp.Description("Type of task to get help with"),
			mcp.Enum("general", "create_task", "assign_users", "project_setup"),
			mcp.DefaultString("general"),
		),
	), h.getWorkflowHelp)
}

func (h *Handler) getWorkflowHelp(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskType := req.GetString("task_type", "general")
	text, ok := workflows[taskType]
	if !ok {
		text = workflows["general"]
	}
	return mcp.NewToolResultText(text), nil
}
