package server

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/campbridge/freedcamp-mcp/internal/freedcamp"
)

const scopedTaskLimit = 50

func stringItems() mcp.PropertyOption {
	return mcp.Items(map[string]any{"type": "string"})
}

func (h *Handler) registerTaskTools(s *server.MCPServer) {
	h.addTool(s, mcp.NewTool("get_all_tasks",
		mcp.WithDescription("Get all tasks with advanced filtering and pagination"),
		mcp.WithNumber("limit", mcp.Description("Maximum number of tasks to return"), mcp.DefaultNumber(freedcamp.DefaultTaskLimit)),
		mcp.WithNumber("offset", mcp.Description("Offset for pagination"), mcp.DefaultNumber(0)),
		mcp.WithArray("status_filter", mcp.Description("Status codes: 0=not started, 1=completed, 2=in progress"), stringItems()),
		mcp.WithArray("assigned_to_ids", mcp.Description("Filter by assigned user ids"), stringItems()),
		mcp.WithArray("created_by_ids", mcp.Description("Filter by creator user ids"), stringItems()),
		mcp.WithString("due_date_from", mcp.Description("Due date from, YYYY-MM-DD")),
		mcp.WithString("due_date_to", mcp.Description("Due date to, YYYY-MM-DD")),
		mcp.WithString("created_date_from", mcp.Description("Creation date from, YYYY-MM-DD")),
		mcp.WithString("created_date_to", mcp.Description("Creation date to, YYYY-MM-DD")),
		mcp.WithBoolean("include_archived", mcp.Description("Include archived projects"), mcp.DefaultBool(false)),
		mcp.WithString("lists_status", mcp.Description("Task list status"), mcp.Enum("active", "archived", "all"), mcp.DefaultString("active")),
		mcp.WithString("order_by", mcp.Description("Ordering field"), mcp.Enum("priority", "due_date")),
		mcp.WithString("order_direction", mcp.Description("Ordering direction"), mcp.Enum("asc", "desc"), mcp.DefaultString("asc")),
		mcp.WithBoolean("include_custom_fields", mcp.Description("Include custom fields data"), mcp.DefaultBool(false)),
		mcp.WithBoolean("include_tags", mcp.Description("Include tags data"), mcp.DefaultBool(false)),
	), h.getAllTasks)

	h.addTool(s, mcp.NewTool("get_project_tasks",
		mcp.WithDescription("Get tasks for a specific project. Returns a compact summary unless include_details is set."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("The project id")),
		mcp.WithString("status", mcp.Description("Status preset"), mcp.Enum("incomplete", "complete", "in_progress")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of tasks to return"), mcp.DefaultNumber(scopedTaskLimit)),
		mcp.WithNumber("offset", mcp.Description("Offset for pagination"), mcp.DefaultNumber(0)),
		mcp.WithBoolean("include_custom_fields", mcp.Description("Include custom fields data"), mcp.DefaultBool(false)),
		mcp.WithBoolean("include_tags", mcp.Description("Include tags data"), mcp.DefaultBool(false)),
		mcp.WithBoolean("include_details", mcp.Description("Return the full JSON envelope instead of a summary"), mcp.DefaultBool(false)),
	), h.getProjectTasks)

	h.addTool(s, mcp.NewTool("get_user_tasks",
		mcp.WithDescription("Get tasks assigned to a specific user. Hides completed tasks unless include_completed is set."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("The user id")),
		mcp.WithBoolean("include_completed", mcp.Description("Include completed tasks"), mcp.DefaultBool(false)),
		mcp.WithNumber("limit", mcp.Description("Maximum number of tasks to return"), mcp.DefaultNumber(scopedTaskLimit)),
		mcp.WithNumber("offset", mcp.Description("Offset for pagination"), mcp.DefaultNumber(0)),
		mcp.WithBoolean("include_custom_fields", mcp.Description("Include custom fields data"), mcp.DefaultBool(false)),
		mcp.WithBoolean("include_details", mcp.Description("Return the full JSON envelope instead of a summary"), mcp.DefaultBool(false)),
	), h.getUserTasks)

	h.addTool(s, mcp.NewTool("get_task_details",
		mcp.WithDescription("Get detailed information about a task, including comments and files"),
		mcp.WithString("task_id", mcp.Required(), mcp.Description("The task id")),
		mcp.WithBoolean("include_custom_fields", mcp.Description("Include custom fields data"), mcp.DefaultBool(true)),
		mcp.WithBoolean("include_details", mcp.Description("Return the full JSON envelope"), mcp.DefaultBool(true)),
	), h.getTaskDetails)

	h.addTool(s, mcp.NewTool("create_task",
		mcp.WithDescription("Create a new task in Freedcamp. Look up project_id with get_projects() and assigned_to_id with get_users() first; never guess ids."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project id where the task will be created")),
		mcp.WithString("description", mcp.Description("Task description")),
		mcp.WithString("task_group_id", mcp.Description("Task group/list id")),
		mcp.WithNumber("priority", mcp.Description("Task priority: 0=none, 1=low, 2=medium, 3=high")),
		mcp.WithString("assigned_to_id", mcp.Description("User id to assign the task to")),
		mcp.WithString("due_date", mcp.Description("Due date, YYYY-MM-DD")),
		mcp.WithString("start_date", mcp.Description("Start date, YYYY-MM-DD")),
		mcp.WithString("recurring_rule", mcp.Description("Recurrence rule in iCalendar format")),
		mcp.WithString("parent_task_id", mcp.Description("Parent task id for subtasks")),
		mcp.WithArray("attached_file_ids", mcp.Description("File ids to attach"), mcp.Items(map[string]any{"type": "integer"})),
		mcp.WithArray("custom_fields", mcp.Description("Custom fields data"), mcp.Items(map[string]any{"type": "object"})),
		mcp.WithString("cf_template_id", mcp.Description("Custom fields template id")),
	), h.createTask)

	h.addTool(s, mcp.NewTool("update_task",
		mcp.WithDescription("Update an existing task"),
		mcp.WithString("task_id", mcp.Required(), mcp.Description("The task id to update")),
		mcp.WithString("title", mcp.Description("New task title")),
		mcp.WithString("description", mcp.Description("New task description")),
		mcp.WithString("task_group_id", mcp.Description("New task group/list id")),
		mcp.WithNumber("priority", mcp.Description("New priority: 0=none, 1=low, 2=medium, 3=high")),
		mcp.WithString("assigned_to_id", mcp.Description("New assignee user id")),
		mcp.WithString("due_date", mcp.Description("New due date, YYYY-MM-DD")),
		mcp.WithString("start_date", mcp.Description("New start date, YYYY-MM-DD")),
		mcp.WithNumber("status", mcp.Description("New status: 0=not started, 1=completed, 2=in progress")),
		mcp.WithString("parent_task_id", mcp.Description("New parent task id")),
		mcp.WithArray("attached_file_ids", mcp.Description("File ids to attach"), mcp.Items(map[string]any{"type": "integer"})),
		mcp.WithArray("custom_fields", mcp.Description("New custom fields data"), mcp.Items(map[string]any{"type": "object"})),
		mcp.WithString("cf_template_id", mcp.Description("Custom fields template id")),
	), h.updateTask)

	h.addTool(s, mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task"),
		mcp.WithString("task_id", mcp.Required(), mcp.Description("The task id to delete")),
	), h.deleteTask)
}

func (h *Handler) getAllTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := freedcamp.TaskListOptions{
		Limit:           req.GetInt("limit", freedcamp.DefaultTaskLimit),
		Offset:          req.GetInt("offset", 0),
		Status:          req.GetStringSlice("status_filter", nil),
		AssignedToIDs:   req.GetStringSlice("assigned_to_ids", nil),
		CreatedByIDs:    req.GetStringSlice("created_by_ids", nil),
		DueDateFrom:     req.GetString("due_date_from", ""),
		DueDateTo:       req.GetString("due_date_to", ""),
		CreatedDateFrom: req.GetString("created_date_from", ""),
		CreatedDateTo:   req.GetString("created_date_to", ""),
		IncludeArchived: req.GetBool("include_archived", false),
		ListsStatus:     req.GetString("lists_status", "active"),
		OrderBy:         req.GetString("order_by", ""),
		OrderDirection:  req.GetString("order_direction", "asc"),
		CustomFields:    req.GetBool("include_custom_fields", false),
		Tags:            req.GetBool("include_tags", false),
	}

	page, err := h.client.ListTasks(ctx, opts)
	if err != nil {
		return errResult(err), nil
	}
	return okResult(page, ""), nil
}

func (h *Handler) getProjectTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return errResult(err), nil
	}

	opts := freedcamp.TaskListOptions{
		ProjectID:    projectID,
		Limit:        req.GetInt("limit", scopedTaskLimit),
		Offset:       req.GetInt("offset", 0),
		CustomFields: req.GetBool("include_custom_fields", false),
		Tags:         req.GetBool("include_tags", false),
	}
	switch req.GetString("status", "") {
	case "incomplete":
		opts.Status = []string{freedcamp.StatusNotStarted}
	case "complete":
		opts.Status = []string{freedcamp.StatusCompleted}
	case "in_progress":
		opts.Status = []string{freedcamp.StatusInProgress}
	}

	page, err := h.client.ListTasks(ctx, opts)
	if err != nil {
		return errResult(err), nil
	}
	if req.GetBool("include_details", false) {
		return okResult(page, ""), nil
	}

	// Best effort: name the project in the summary header.
	scope := "project " + projectID
	if project, err := h.client.GetProject(ctx, projectID); err == nil && project.Name != "" {
		scope = project.Name
	}

	total := page.Meta.Total
	if total == 0 {
		total = len(page.Tasks)
	}
	summary := tasksSummary(page.Tasks, total, scope, time.Now())
	call := fmt.Sprintf("get_project_tasks(%q)", projectID)
	return mcp.NewToolResultText(paginationHint(summary, call, len(page.Tasks), total, opts.Limit, opts.Offset)), nil
}

func (h *Handler) getUserTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil {
		return errResult(err), nil
	}

	opts := freedcamp.TaskListOptions{
		AssignedToIDs: []string{userID},
		Limit:         req.GetInt("limit", scopedTaskLimit),
		Offset:        req.GetInt("offset", 0),
		CustomFields:  req.GetBool("include_custom_fields", false),
	}
	if !req.GetBool("include_completed", false) {
		opts.Status = []string{freedcamp.StatusNotStarted, freedcamp.StatusInProgress}
	}

	page, err := h.client.ListTasks(ctx, opts)
	if err != nil {
		return errResult(err), nil
	}
	if req.GetBool("include_details", false) {
		return okResult(page, ""), nil
	}

	scope := "user " + userID
	if user, err := h.client.GetUser(ctx, userID); err == nil && user.FullName != "" {
		scope = user.FullName + "'s workspace"
	}

	total := page.Meta.Total
	if total == 0 {
		total = len(page.Tasks)
	}
	summary := tasksSummary(page.Tasks, total, scope, time.Now())
	call := fmt.Sprintf("get_user_tasks(%q)", userID)
	return mcp.NewToolResultText(paginationHint(summary, call, len(page.Tasks), total, opts.Limit, opts.Offset)), nil
}

func (h *Handler) getTaskDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := req.RequireString("task_id")
	if err != nil {
		return errResult(err), nil
	}

	task, err := h.client.GetTask(ctx, taskID, req.GetBool("include_custom_fields", true))
	if err != nil {
		return errResult(err), nil
	}
	if req.GetBool("include_details", true) {
		return okResult(task, ""), nil
	}
	return mcp.NewToolResultText(taskDetailSummary(task)), nil
}

func (h *Handler) createTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return errResult(err), nil
	}
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return errResult(err), nil
	}

	params := freedcamp.CreateTaskParams{
		Title:         title,
		ProjectID:     projectID,
		Description:   req.GetString("description", ""),
		TaskGroupID:   req.GetString("task_group_id", ""),
		AssignedToID:  req.GetString("assigned_to_id", ""),
		DueDate:       req.GetString("due_date", ""),
		StartDate:     req.GetString("start_date", ""),
		RecurringRule: req.GetString("recurring_rule", ""),
		ParentTaskID:  req.GetString("parent_task_id", ""),
		CFTemplateID:  req.GetString("cf_template_id", ""),
	}
	if params.Priority, err = optInt(req, "priority"); err != nil {
		return errResult(err), nil
	}
	if params.AttachedFileIDs, err = intSlice(req, "attached_file_ids"); err != nil {
		return errResult(err), nil
	}
	if params.CustomFields, err = rawMessage(req, "custom_fields"); err != nil {
		return errResult(err), nil
	}

	created, err := h.client.CreateTask(ctx, params)
	if err != nil {
		return errResult(err), nil
	}
	return okResult(created, "Task created successfully"), nil
}

func (h *Handler) updateTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := req.RequireString("task_id")
	if err != nil {
		return errResult(err), nil
	}

	var params freedcamp.UpdateTaskParams
	if params.Title, err = optString(req, "title"); err != nil {
		return errResult(err), nil
	}
	if params.Description, err = optString(req, "description"); err != nil {
		return errResult(err), nil
	}
	if params.TaskGroupID, err = optString(req, "task_group_id"); err != nil {
		return errResult(err), nil
	}
	if params.Priority, err = optInt(req, "priority"); err != nil {
		return errResult(err), nil
	}
	if params.AssignedToID, err = optString(req, "assigned_to_id"); err != nil {
		return errResult(err), nil
	}
	if params.DueDate, err = optString(req, "due_date"); err != nil {
		return errResult(err), nil
	}
	if params.StartDate, err = optString(req, "start_date"); err != nil {
		return errResult(err), nil
	}
	if params.Status, err = optInt(req, "status"); err != nil {
		return errResult(err), nil
	}
	if params.ParentTaskID, err = optString(req, "parent_task_id"); err != nil {
		return errResult(err), nil
	}
	if params.AttachedFileIDs, err = intSlice(req, "attached_file_ids"); err != nil {
		return errResult(err), nil
	}
	if params.CustomFields, err = rawMessage(req, "custom_fields"); err != nil {
		return errResult(err), nil
	}
	if params.CFTemplateID, err = optString(req, "cf_template_id"); err != nil {
		return errResult(err), nil
	}

	updated, err := h.client.UpdateTask(ctx, taskID, params)
	if err != nil {
		return errResult(err), nil
	}
	return okResult(updated, "Task updated successfully"), nil
}

func (h *Handler) deleteTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := req.RequireString("task_id")
	if err != nil {
		return errResult(err), nil
	}
	if err := h.client.DeleteTask(ctx, taskID); err != nil {
		return errResult(err), nil
	}
	return okResult(nil, "Task deleted successfully"), nil
}
