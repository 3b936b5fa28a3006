package freedcamp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/campbridge/freedcamp-mcp/pkg/types"
)

// ProjectMember is an entry in a project's changed_users payload.
type ProjectMember struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	RoleID string `json:"role_id,omitempty"`
}

type changedUsers struct {
	Added   []ProjectMember `json:"added,omitempty"`
	Updated []ProjectMember `json:"updated,omitempty"`
	Deleted []ProjectMember `json:"deleted,omitempty"`
}

// CreateProjectParams carries the fields accepted when creating a project.
type CreateProjectParams struct {
	Name         string          `json:"project_name"`
	Description  string          `json:"project_description,omitempty"`
	Color        string          `json:"project_color,omitempty"`
	GroupID      string          `json:"group_id,omitempty"`
	GroupName    string          `json:"group_name,omitempty"`
	TodoViewType string          `json:"todo_view_type,omitempty"`
	UsersToAdd   []ProjectMember `json:"-"`
}

// UpdateProjectParams carries the fields accepted when updating a project.
// Nil pointers mean "leave unchanged".
type UpdateProjectParams struct {
	Name            *string
	Description     *string
	Color           *string
	GroupID         *string
	GroupName       *string
	Active          *bool
	UsersToAdd      []ProjectMember
	UsersToUpdate   []ProjectMember
	UsersToDelete   []ProjectMember
	OnlyUpdateUsers bool
}

// ListProjects returns all projects grouped by group name. When
// includeRecent is set the listing also reports recently visited project
// ids.
func (c *Client) ListProjects(ctx context.Context, includeRecent bool) (*types.ProjectList, error) {
	params := url.Values{}
	if includeRecent {
		params.Set("f_recent_projects_ids", "1")
	}

	data, err := c.get(ctx, "projects", params)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Projects         []wireProject `json:"projects"`
		RecentProjectIDs []string      `json:"recent_project_ids"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}

	// Group while preserving first-seen order.
	list := &types.ProjectList{}
	index := map[string]int{}
	for _, wp := range payload.Projects {
		groupName := wp.GroupName
		if groupName == "" {
			groupName = "Ungrouped"
		}
		i, ok := index[groupName]
		if !ok {
			i = len(list.Groups)
			index[groupName] = i
			list.Groups = append(list.Groups, types.ProjectGroup{Group: groupName})
		}
		list.Groups[i].Projects = append(list.Groups[i].Projects, wp.toProject())
	}

	if includeRecent {
		list.RecentProjectIDs = payload.RecentProjectIDs
	}
	return list, nil
}

// GetProject returns detailed information about one project, including its
// member list and notifications.
func (c *Client) GetProject(ctx context.Context, projectID string) (*types.Project, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: project_id is required", ErrValidation)
	}

	data, err := c.get(ctx, "projects/"+projectID, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Projects []wireProject `json:"projects"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode project: %w", err)
	}
	if len(payload.Projects) == 0 {
		return nil, &APIError{Status: 404, Message: "project not found"}
	}

	project := payload.Projects[0].toProjectDetail()
	return &project, nil
}

// CreateProject creates a new project and returns the raw created payload.
func (c *Client) CreateProject(ctx context.Context, params CreateProjectParams) (json.RawMessage, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if params.TodoViewType == "" {
		params.TodoViewType = "default"
	}

	body := map[string]any{
		"project_name":   params.Name,
		"todo_view_type": params.TodoViewType,
	}
	if params.Description != "" {
		body["project_description"] = params.Description
	}
	if params.Color != "" {
		body["project_color"] = params.Color
	}
	if params.GroupID != "" {
		body["group_id"] = params.GroupID
	}
	if params.GroupName != "" {
		body["group_name"] = params.GroupName
	}
	if len(params.UsersToAdd) > 0 {
		body["changed_users"] = changedUsers{Added: params.UsersToAdd}
	}

	return c.post(ctx, "projects", body)
}

// UpdateProject updates an existing project, optionally changing only its
// member list.
func (c *Client) UpdateProject(ctx context.Context, projectID string, params UpdateProjectParams) (json.RawMessage, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: project_id is required", ErrValidation)
	}

	body := map[string]any{}
	if params.OnlyUpdateUsers {
		body["f_only_users_update"] = true
	} else {
		if params.Name != nil {
			body["project_name"] = *params.Name
		}
		if params.Description != nil {
			body["project_description"] = *params.Description
		}
		if params.Color != nil {
			body["project_color"] = *params.Color
		}
		if params.GroupID != nil {
			body["group_id"] = *params.GroupID
		}
		if params.GroupName != nil {
			body["group_name"] = *params.GroupName
		}
		if params.Active != nil {
			body["f_active"] = *params.Active
		}
	}

	changes := changedUsers{
		Added:   params.UsersToAdd,
		Updated: params.UsersToUpdate,
		Deleted: params.UsersToDelete,
	}
	if len(changes.Added) > 0 || len(changes.Updated) > 0 || len(changes.Deleted) > 0 {
		body["changed_users"] = changes
	}

	return c.post(ctx, "projects/"+projectID, body)
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	if projectID == "" {
		return fmt.Errorf("%w: project_id is required", ErrValidation)
	}
	_, err := c.delete(ctx, "projects/"+projectID)
	return err
}
