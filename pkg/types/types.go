// Package types holds the normalized resource shapes returned to MCP callers.
// Every cross-entity reference is an opaque identifier string owned by the
// remote API; nothing here is resolved or validated locally.
package types

import "encoding/json"

// Result is the envelope every tool returns.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Project is a Freedcamp project.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	GroupName   string `json:"group_name,omitempty"`
	GroupID     string `json:"group_id,omitempty"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"created_at,omitempty"`
	URL         string `json:"url,omitempty"`
	UsersCount  int    `json:"users_count"`
	TasksCount  int    `json:"tasks_count"`

	// Detail-only fields, populated by GetProject.
	Users            []ProjectUser  `json:"users,omitempty"`
	Notifications    []Notification `json:"notifications,omitempty"`
	CanAddTasks      bool           `json:"can_add_tasks,omitempty"`
	AdvancedSubtasks bool           `json:"advanced_subtasks,omitempty"`
	TodoViewType     string         `json:"todo_view_type,omitempty"`
}

// ProjectGroup is one named group of projects, as the projects listing
// returns them.
type ProjectGroup struct {
	Group    string    `json:"group"`
	Projects []Project `json:"projects"`
}

// ProjectList is the full projects listing.
type ProjectList struct {
	Groups           []ProjectGroup `json:"groups"`
	RecentProjectIDs []string       `json:"recent_project_ids,omitempty"`
}

// ProjectUser is a project member.
type ProjectUser struct {
	UserID    string `json:"user_id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email,omitempty"`
	RoleID    string `json:"role_id,omitempty"`
	RoleName  string `json:"role_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Notification is a project-level notification entry.
type Notification struct {
	ID        string `json:"id,omitempty"`
	Type      string `json:"type,omitempty"`
	Message   string `json:"message,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Task is a Freedcamp task. Parent/child links are plain id references.
type Task struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Description       string `json:"description,omitempty"`
	Status            int    `json:"status"`
	StatusTitle       string `json:"status_title,omitempty"`
	Priority          int    `json:"priority"`
	PriorityTitle     string `json:"priority_title,omitempty"`
	AssignedToID      string `json:"assigned_to_id,omitempty"`
	AssignedToName    string `json:"assigned_to_fullname,omitempty"`
	CreatedByID       string `json:"created_by_id,omitempty"`
	ProjectID         string `json:"project_id,omitempty"`
	TaskGroupID       string `json:"task_group_id,omitempty"`
	TaskGroupName     string `json:"task_group_name,omitempty"`
	CreatedAt         string `json:"created_at,omitempty"`
	DueDate           string `json:"due_date,omitempty"`
	StartDate         string `json:"start_date,omitempty"`
	CompletedAt       string `json:"completed_at,omitempty"`
	CommentsCount     int    `json:"comments_count"`
	FilesCount        int    `json:"files_count"`
	URL               string `json:"url,omitempty"`
	Order             int    `json:"order"`
	RecurringRule     string `json:"recurring_rule,omitempty"`
	ArchivedList      bool   `json:"archived_list"`
	HierarchyLevel    int    `json:"hierarchy_level"`
	ParentID          string `json:"parent_id,omitempty"`
	TopParentID       string `json:"top_parent_id,omitempty"`
	AdvancedSubtask   bool   `json:"advanced_subtask"`
	CanDelete         bool   `json:"can_delete"`
	CanEdit           bool   `json:"can_edit"`
	CanAssign         bool   `json:"can_assign"`
	CanProgress       bool   `json:"can_progress"`
	CanComment        bool   `json:"can_comment"`

	CustomFields      json.RawMessage `json:"custom_fields,omitempty"`
	CustomFieldsTplID string          `json:"cf_tpl_id,omitempty"`
	Tags              json.RawMessage `json:"tags,omitempty"`
	Comments          []Comment       `json:"comments,omitempty"`
	Files             json.RawMessage `json:"files,omitempty"`
}

// PageMeta carries listing pagination info as the API reports it.
type PageMeta struct {
	Total  int `json:"total,omitempty"`
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// TaskPage is one page of a task listing.
type TaskPage struct {
	Tasks       []Task          `json:"tasks"`
	Meta        PageMeta        `json:"meta"`
	CFTemplates json.RawMessage `json:"cf_templates,omitempty"`
}

// User is a workspace member.
type User struct {
	UserID    string `json:"user_id"`
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
}

// Comment is attached to an item (task, file, ...) by id.
type Comment struct {
	ID                   string          `json:"id"`
	Description          string          `json:"description"`
	DescriptionProcessed string          `json:"description_processed,omitempty"`
	CreatedByID          string          `json:"created_by_id,omitempty"`
	CreatedAt            string          `json:"created_at,omitempty"`
	UserFullName         string          `json:"user_full_name,omitempty"`
	LikesCount           int             `json:"likes_count"`
	Liked                bool            `json:"liked"`
	Unread               bool            `json:"unread"`
	CanEdit              bool            `json:"can_edit"`
	Files                json.RawMessage `json:"files,omitempty"`
	URL                  string          `json:"url,omitempty"`
}

// File is file metadata; the content lives behind URL.
type File struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	ThumbURL    string `json:"thumb_url,omitempty"`
	Size        string `json:"size,omitempty"`
	FileType    string `json:"file_type,omitempty"`
	ProjectID   string `json:"project_id,omitempty"`
	ItemID      string `json:"item_id,omitempty"`
	CommentID   string `json:"comment_id,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	IsImage     bool   `json:"is_image"`
	IsTemporary bool   `json:"is_temporary"`
	CreatedAt   string `json:"created_at,omitempty"`
	Location    string `json:"location,omitempty"`
}
