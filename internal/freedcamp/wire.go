package freedcamp

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/campbridge/freedcamp-mcp/pkg/types"
)

// apiEnvelope is the outer shape of every Freedcamp response.
type apiEnvelope struct {
	Data      json.RawMessage `json:"data"`
	HTTPCode  int             `json:"http_code"`
	ErrorCode int             `json:"error_code"`
	Msg       string          `json:"msg"`
}

// unixTS is a unix timestamp that the API serializes as either a number or
// a string.
type unixTS int64

func (t *unixTS) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*t = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*t = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			// Unparsable timestamps render as empty, not as a failed call.
			*t = 0
			return nil
		}
		*t = unixTS(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = unixTS(n)
	return nil
}

// wireInt is an integer the API serializes as either a number or a string,
// the same way it treats timestamps.
type wireInt int

func (n *wireInt) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			*n = 0
			return nil
		}
		*n = wireInt(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = wireInt(v)
	return nil
}

// timestamp renders as "YYYY-MM-DD HH:MM:SS", empty when unset.
func (t unixTS) timestamp() string {
	if t == 0 {
		return ""
	}
	return time.Unix(int64(t), 0).Format("2006-01-02 15:04:05")
}

// date renders as "YYYY-MM-DD", empty when unset.
func (t unixTS) date() string {
	if t == 0 {
		return ""
	}
	return time.Unix(int64(t), 0).Format("2006-01-02")
}

type wireProject struct {
	ID           string      `json:"id"`
	Name         string      `json:"project_name"`
	Description  string      `json:"project_description"`
	Color        string      `json:"project_color"`
	GroupName    string      `json:"group_name"`
	GroupID      string      `json:"group_id"`
	Active       bool        `json:"f_active"`
	CreatedTS    unixTS      `json:"created_ts"`
	URL          string      `json:"url"`
	TasksCount   int         `json:"tasks_count"`
	Users        []wireUser  `json:"users"`
	Notifs       []wireNotif `json:"notifications"`
	CanAddTasks  bool        `json:"f_can_add_tasks"`
	AdvSubtasks  bool        `json:"f_subtasks_adv"`
	TodoViewType string      `json:"todo_view_type"`
}

type wireNotif struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	CreatedTS unixTS `json:"created_ts"`
}

type wireUser struct {
	UserID    string `json:"user_id"`
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	RoleID    string `json:"role_id"`
	RoleName  string `json:"role_name"`
	AvatarURL string `json:"avatar_url"`
	Timezone  string `json:"timezone"`
}

type wireTask struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Status         wireInt         `json:"status"`
	StatusTitle    string          `json:"status_title"`
	Priority       wireInt         `json:"priority"`
	PriorityTitle  string          `json:"priority_title"`
	AssignedToID   string          `json:"assigned_to_id"`
	AssignedToName string          `json:"assigned_to_fullname"`
	CreatedByID    string          `json:"created_by_id"`
	ProjectID      string          `json:"project_id"`
	TaskGroupID    string          `json:"task_group_id"`
	TaskGroupName  string          `json:"task_group_name"`
	CreatedTS      unixTS          `json:"created_ts"`
	DueTS          unixTS          `json:"due_ts"`
	StartTS        unixTS          `json:"start_ts"`
	CompletedTS    unixTS          `json:"completed_ts"`
	CommentsCount  int             `json:"comments_count"`
	FilesCount     int             `json:"files_count"`
	URL            string          `json:"url"`
	Order          int             `json:"order"`
	RecurringRule  string          `json:"r_rule"`
	ArchivedList   bool            `json:"f_archived_list"`
	HierarchyLevel int             `json:"h_level"`
	ParentID       string          `json:"h_parent_id"`
	TopParentID    string          `json:"h_top_id"`
	AdvSubtask     bool            `json:"f_adv_subtask"`
	CanDelete      bool            `json:"can_delete"`
	CanEdit        bool            `json:"can_edit"`
	CanAssign      bool            `json:"can_assign"`
	CanProgress    bool            `json:"can_progress"`
	CanComment     bool            `json:"can_comment"`
	CustomFields   json.RawMessage `json:"custom_fields"`
	CFTemplateID   string          `json:"cf_tpl_id"`
	Tags           json.RawMessage `json:"tags"`
	Comments       []wireComment   `json:"comments"`
	Files          json.RawMessage `json:"files"`
}

type wireComment struct {
	ID                   string          `json:"id"`
	Description          string          `json:"description"`
	DescriptionProcessed string          `json:"description_processed"`
	CreatedByID          string          `json:"created_by_id"`
	CreatedTS            unixTS          `json:"created_ts"`
	UserFullName         string          `json:"user_full_name"`
	LikesCount           int             `json:"likes_count"`
	Liked                bool            `json:"f_liked"`
	Unread               bool            `json:"f_unread"`
	CanEdit              bool            `json:"can_edit"`
	Files                json.RawMessage `json:"files"`
	URL                  string          `json:"url"`
}

type wireFile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	ThumbURL  string `json:"thumb_url"`
	Size      string `json:"size"`
	FileType  string `json:"file_type"`
	ProjectID string `json:"project_id"`
	ItemID    string `json:"item_id"`
	CommentID string `json:"comment_id"`
	UserID    string `json:"user_id"`
	IsImage   bool   `json:"f_image"`
	IsTemp    bool   `json:"f_temporary"`
	CreatedTS unixTS `json:"created_ts"`
	Location  string `json:"location"`
}

func (w wireProject) toProject() types.Project {
	return types.Project{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Color:       w.Color,
		GroupName:   w.GroupName,
		GroupID:     w.GroupID,
		Active:      w.Active,
		CreatedAt:   w.CreatedTS.timestamp(),
		URL:         w.URL,
		UsersCount:  len(w.Users),
		TasksCount:  w.TasksCount,
	}
}

func (w wireProject) toProjectDetail() types.Project {
	project := w.toProject()
	project.CanAddTasks = w.CanAddTasks
	project.AdvancedSubtasks = w.AdvSubtasks
	project.TodoViewType = w.TodoViewType

	for _, u := range w.Users {
		project.Users = append(project.Users, types.ProjectUser{
			UserID:    u.UserID,
			FullName:  u.FullName,
			Email:     u.Email,
			RoleID:    u.RoleID,
			RoleName:  u.RoleName,
			AvatarURL: u.AvatarURL,
		})
	}
	for _, n := range w.Notifs {
		project.Notifications = append(project.Notifications, types.Notification{
			ID:        n.ID,
			Type:      n.Type,
			Message:   n.Message,
			CreatedAt: n.CreatedTS.timestamp(),
		})
	}
	return project
}

func (w wireTask) toTask(includeCustomFields bool) types.Task {
	task := types.Task{
		ID:              w.ID,
		Title:           w.Title,
		Description:     w.Description,
		Status:          int(w.Status),
		StatusTitle:     w.StatusTitle,
		Priority:        int(w.Priority),
		PriorityTitle:   w.PriorityTitle,
		AssignedToID:    w.AssignedToID,
		AssignedToName:  w.AssignedToName,
		CreatedByID:     w.CreatedByID,
		ProjectID:       w.ProjectID,
		TaskGroupID:     w.TaskGroupID,
		TaskGroupName:   w.TaskGroupName,
		CreatedAt:       w.CreatedTS.timestamp(),
		DueDate:         w.DueTS.date(),
		StartDate:       w.StartTS.date(),
		CompletedAt:     w.CompletedTS.timestamp(),
		CommentsCount:   w.CommentsCount,
		FilesCount:      w.FilesCount,
		URL:             w.URL,
		Order:           w.Order,
		RecurringRule:   w.RecurringRule,
		ArchivedList:    w.ArchivedList,
		HierarchyLevel:  w.HierarchyLevel,
		ParentID:        w.ParentID,
		TopParentID:     w.TopParentID,
		AdvancedSubtask: w.AdvSubtask,
		CanDelete:       w.CanDelete,
		CanEdit:         w.CanEdit,
		CanAssign:       w.CanAssign,
		CanProgress:     w.CanProgress,
		CanComment:      w.CanComment,
		Tags:            w.Tags,
		Files:           w.Files,
	}

	if includeCustomFields && len(w.CustomFields) > 0 {
		task.CustomFields = w.CustomFields
		task.CustomFieldsTplID = w.CFTemplateID
	}
	for _, c := range w.Comments {
		task.Comments = append(task.Comments, c.toComment())
	}
	return task
}

func (w wireComment) toComment() types.Comment {
	return types.Comment{
		ID:                   w.ID,
		Description:          w.Description,
		DescriptionProcessed: w.DescriptionProcessed,
		CreatedByID:          w.CreatedByID,
		CreatedAt:            w.CreatedTS.timestamp(),
		UserFullName:         w.UserFullName,
		LikesCount:           w.LikesCount,
		Liked:                w.Liked,
		Unread:               w.Unread,
		CanEdit:              w.CanEdit,
		Files:                w.Files,
		URL:                  w.URL,
	}
}

func (w wireUser) toUser() types.User {
	return types.User{
		UserID:    w.UserID,
		FullName:  w.FullName,
		FirstName: w.FirstName,
		LastName:  w.LastName,
		Email:     w.Email,
		AvatarURL: w.AvatarURL,
		Timezone:  w.Timezone,
	}
}

func (w wireFile) toFile() types.File {
	return types.File{
		ID:          w.ID,
		Name:        w.Name,
		URL:         w.URL,
		ThumbURL:    w.ThumbURL,
		Size:        w.Size,
		FileType:    w.FileType,
		ProjectID:   w.ProjectID,
		ItemID:      w.ItemID,
		CommentID:   w.CommentID,
		UserID:      w.UserID,
		IsImage:     w.IsImage,
		IsTemporary: w.IsTemp,
		CreatedAt:   w.CreatedTS.timestamp(),
		Location:    w.Location,
	}
}
