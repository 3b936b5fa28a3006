package freedcamp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/campbridge/freedcamp-mcp/pkg/types"
)

// CreateTaskParams carries the fields accepted when creating a task.
// Title and ProjectID are required; everything else is optional.
type CreateTaskParams struct {
	Title           string
	ProjectID       string
	Description     string
	TaskGroupID     string
	Priority        *int
	AssignedToID    string
	DueDate         string // YYYY-MM-DD
	StartDate       string // YYYY-MM-DD
	RecurringRule   string // iCalendar RRULE
	ParentTaskID    string
	AttachedFileIDs []int
	CustomFields    json.RawMessage
	CFTemplateID    string
}

// UpdateTaskParams carries the fields accepted when updating a task.
// Nil pointers mean "leave unchanged"; pointers to zero values clear.
type UpdateTaskParams struct {
	Title           *string
	Description     *string
	TaskGroupID     *string
	Priority        *int
	AssignedToID    *string
	DueDate         *string
	StartDate       *string
	Status          *int
	ParentTaskID    *string
	AttachedFileIDs []int
	CustomFields    json.RawMessage
	CFTemplateID    *string
}

// ListTasks returns one page of tasks matching the given options. The
// project- and user-scoped tool listings are presets over this call.
func (c *Client) ListTasks(ctx context.Context, opts TaskListOptions) (*types.TaskPage, error) {
	params, err := opts.values()
	if err != nil {
		return nil, err
	}

	data, err := c.get(ctx, "tasks", params)
	if err != nil {
		return nil, err
	}
	return decodeTaskPage(data, opts.CustomFields)
}

// GetTask returns one task with its comments and files inlined.
func (c *Client) GetTask(ctx context.Context, taskID string, includeCustomFields bool) (*types.Task, error) {
	if taskID == "" {
		return nil, fmt.Errorf("%w: task_id is required", ErrValidation)
	}

	params := url.Values{}
	if includeCustomFields {
		params.Set("f_cf", "1")
	}

	data, err := c.get(ctx, "tasks/"+taskID, params)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Tasks []wireTask `json:"tasks"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode task: %w", err)
	}
	if len(payload.Tasks) == 0 {
		return nil, &APIError{Status: 404, Message: "task not found"}
	}

	task := payload.Tasks[0].toTask(includeCustomFields)
	return &task, nil
}

// CreateTask creates a new task and returns the raw created payload.
func (c *Client) CreateTask(ctx context.Context, params CreateTaskParams) (json.RawMessage, error) {
	if params.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if params.ProjectID == "" {
		return nil, fmt.Errorf("%w: project_id is required", ErrValidation)
	}

	body := map[string]any{
		"title":      params.Title,
		"project_id": params.ProjectID,
	}
	if params.Description != "" {
		body["description"] = params.Description
	}
	if params.TaskGroupID != "" {
		body["task_group_id"] = params.TaskGroupID
	}
	if params.Priority != nil {
		body["priority"] = fmt.Sprintf("%d", *params.Priority)
	}
	if params.AssignedToID != "" {
		body["assigned_to_id"] = params.AssignedToID
	}
	if params.DueDate != "" {
		body["due_date"] = params.DueDate
	}
	if params.StartDate != "" {
		body["start_date"] = params.StartDate
	}
	if params.RecurringRule != "" {
		body["r_rule"] = params.RecurringRule
	}
	if params.ParentTaskID != "" {
		body["h_parent_id"] = params.ParentTaskID
	}
	if len(params.AttachedFileIDs) > 0 {
		body["attached_ids"] = params.AttachedFileIDs
	}
	if len(params.CustomFields) > 0 && params.CFTemplateID != "" {
		body["cf_tpl_id"] = params.CFTemplateID
		body["custom_fields"] = params.CustomFields
	}

	return c.post(ctx, "tasks", body)
}

// UpdateTask updates an existing task.
func (c *Client) UpdateTask(ctx context.Context, taskID string, params UpdateTaskParams) (json.RawMessage, error) {
	if taskID == "" {
		return nil, fmt.Errorf("%w: task_id is required", ErrValidation)
	}

	body := map[string]any{}
	if params.Title != nil {
		body["title"] = *params.Title
	}
	if params.Description != nil {
		body["description"] = *params.Description
	}
	if params.TaskGroupID != nil {
		body["task_group_id"] = *params.TaskGroupID
	}
	if params.Priority != nil {
		body["priority"] = fmt.Sprintf("%d", *params.Priority)
	}
	if params.AssignedToID != nil {
		body["assigned_to_id"] = *params.AssignedToID
	}
	if params.DueDate != nil {
		body["due_date"] = *params.DueDate
	}
	if params.StartDate != nil {
		body["start_date"] = *params.StartDate
	}
	if params.Status != nil {
		body["status"] = fmt.Sprintf("%d", *params.Status)
	}
	if params.ParentTaskID != nil {
		body["h_parent_id"] = *params.ParentTaskID
	}
	if len(params.AttachedFileIDs) > 0 {
		body["attached_ids"] = params.AttachedFileIDs
	}
	if len(params.CustomFields) > 0 {
		if params.CFTemplateID != nil {
			body["cf_tpl_id"] = *params.CFTemplateID
		}
		body["custom_fields"] = params.CustomFields
	}

	return c.post(ctx, "tasks/"+taskID, body)
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	if taskID == "" {
		return fmt.Errorf("%w: task_id is required", ErrValidation)
	}
	_, err := c.delete(ctx, "tasks/"+taskID)
	return err
}

func decodeTaskPage(data json.RawMessage, includeCustomFields bool) (*types.TaskPage, error) {
	var payload struct {
		Tasks       []wireTask      `json:"tasks"`
		Meta        types.PageMeta  `json:"meta"`
		CFTemplates json.RawMessage `json:"cf_templates"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	page := &types.TaskPage{
		Tasks:       make([]types.Task, 0, len(payload.Tasks)),
		Meta:        payload.Meta,
		CFTemplates: payload.CFTemplates,
	}
	for _, wt := range payload.Tasks {
		page.Tasks = append(page.Tasks, wt.toTask(includeCustomFields))
	}
	return page, nil
}
