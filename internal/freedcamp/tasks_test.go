package freedcamp

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tasksPage = `{"data":{
	"tasks":[
		{"id":"11","title":"First","status":0,"project_id":"123","due_ts":1700000000},
		{"id":"12","title":"Second","status":2,"project_id":"123"},
		{"id":"13","title":"Third","status":1,"project_id":"123"}
	],
	"meta":{"total":3,"limit":200,"offset":0}
}}`

func TestListTasks_NoFiltersUsesDefaults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.Equal(t, "200", query.Get("limit"))
		assert.Equal(t, "0", query.Get("offset"))
		assert.Empty(t, query["status[]"])
		assert.Empty(t, query["assigned_to_id[]"])
		w.Write([]byte(tasksPage))
	})

	page, err := client.ListTasks(context.Background(), TaskListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Tasks, 3)

	// First-page order is preserved as the API returned it.
	assert.Equal(t, "11", page.Tasks[0].ID)
	assert.Equal(t, "12", page.Tasks[1].ID)
	assert.Equal(t, "13", page.Tasks[2].ID)
	assert.Equal(t, 3, page.Meta.Total)
	assert.Equal(t, time.Unix(1700000000, 0).Format("2006-01-02"), page.Tasks[0].DueDate)
}

func TestListTasks_FiltersForwardExactly(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.Equal(t, []string{"0", "2"}, query["status[]"])
		assert.Equal(t, []string{"456"}, query["assigned_to_id[]"])
		assert.Equal(t, "2026-01-01", query.Get("due_date[from]"))
		assert.Equal(t, "2026-01-31", query.Get("due_date[to]"))
		assert.Equal(t, "1", query.Get("f_with_archived"))
		assert.Equal(t, "desc", query.Get("order[priority]"))
		assert.Equal(t, "25", query.Get("limit"))
		assert.Equal(t, "50", query.Get("offset"))
		w.Write([]byte(tasksPage))
	})

	_, err := client.ListTasks(context.Background(), TaskListOptions{
		Status:          []string{StatusNotStarted, StatusInProgress},
		AssignedToIDs:   []string{"456"},
		DueDateFrom:     "2026-01-01",
		DueDateTo:       "2026-01-31",
		IncludeArchived: true,
		OrderBy:         "priority",
		OrderDirection:  "desc",
		Limit:           25,
		Offset:          50,
	})
	require.NoError(t, err)
}

func TestListTasks_ProjectScope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "123", r.URL.Query().Get("project_id"))
		w.Write([]byte(tasksPage))
	})

	_, err := client.ListTasks(context.Background(), TaskListOptions{ProjectID: "123"})
	require.NoError(t, err)
}

func TestGetTask_MapsWireFields(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tasks/11", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("f_cf"))
		w.Write([]byte(`{"data":{"tasks":[{
			"id":"11","title":"First","description":"body","status":2,"status_title":"In Progress",
			"priority":3,"priority_title":"High","assigned_to_id":"456","assigned_to_fullname":"Ada L",
			"project_id":"123","created_ts":"1700000000","due_ts":1700086400,
			"h_parent_id":"9","comments_count":2,
			"comments":[{"id":"c1","description":"hi","created_by_id":"456","f_liked":true}]
		}]}}`))
	})

	task, err := client.GetTask(context.Background(), "11", true)
	require.NoError(t, err)

	assert.Equal(t, "11", task.ID)
	assert.Equal(t, 2, task.Status)
	assert.Equal(t, "In Progress", task.StatusTitle)
	assert.Equal(t, "High", task.PriorityTitle)
	assert.Equal(t, "Ada L", task.AssignedToName)
	assert.Equal(t, time.Unix(1700000000, 0).Format("2006-01-02 15:04:05"), task.CreatedAt)
	assert.Equal(t, time.Unix(1700086400, 0).Format("2006-01-02"), task.DueDate)
	assert.Equal(t, "9", task.ParentID)
	require.Len(t, task.Comments, 1)
	assert.Equal(t, "c1", task.Comments[0].ID)
	assert.True(t, task.Comments[0].Liked)
}

func TestListTasks_StringifiedNumericFields(t *testing.T) {
	// The API stringifies numeric fields inconsistently; status and
	// priority must decode either way, like the timestamps do.
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"tasks":[
			{"id":"11","title":"First","status":"2","priority":"3"},
			{"id":"12","title":"Second","status":1,"priority":0},
			{"id":"13","title":"Third","status":"","priority":null}
		]}}`))
	})

	page, err := client.ListTasks(context.Background(), TaskListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Tasks, 3)

	assert.Equal(t, 2, page.Tasks[0].Status)
	assert.Equal(t, 3, page.Tasks[0].Priority)
	assert.Equal(t, 1, page.Tasks[1].Status)
	assert.Equal(t, 0, page.Tasks[2].Status)
	assert.Equal(t, 0, page.Tasks[2].Priority)
}

func TestGetTask_NotFoundInPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"tasks":[]}}`))
	})

	_, err := client.GetTask(context.Background(), "999", false)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

func TestCreateTask_PostsDataForm(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/tasks", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.URL.Query().Get("hash"))

		require.NoError(t, r.ParseForm())
		var body map[string]any
		require.NoError(t, json.Unmarshal([]byte(r.PostForm.Get("data")), &body))
		assert.Equal(t, "T", body["title"])
		assert.Equal(t, "123", body["project_id"])
		assert.Equal(t, "2", body["priority"])
		assert.Equal(t, "456", body["assigned_to_id"])
		assert.NotContains(t, body, "description")

		w.Write([]byte(`{"data":{"task":{"id":"999","title":"T"}}}`))
	})

	priority := 2
	created, err := client.CreateTask(context.Background(), CreateTaskParams{
		Title:        "T",
		ProjectID:    "123",
		Priority:     &priority,
		AssignedToID: "456",
	})
	require.NoError(t, err)

	var payload struct {
		Task struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"task"`
	}
	require.NoError(t, json.Unmarshal(created, &payload))
	assert.Equal(t, "999", payload.Task.ID)
	assert.Equal(t, "T", payload.Task.Title)
}

func TestCreateTask_ValidatesBeforeNetwork(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.CreateTask(context.Background(), CreateTaskParams{Title: "T"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = client.CreateTask(context.Background(), CreateTaskParams{ProjectID: "123"})
	require.ErrorIs(t, err, ErrValidation)
	assert.False(t, called, "validation errors must not reach the network")
}

func TestUpdateTask_OnlyChangedFields(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tasks/11", r.URL.Path)
		require.NoError(t, r.ParseForm())
		var body map[string]any
		require.NoError(t, json.Unmarshal([]byte(r.PostForm.Get("data")), &body))
		assert.Equal(t, map[string]any{"status": "1", "description": ""}, body)
		w.Write([]byte(`{"data":{"task":{"id":"11"}}}`))
	})

	status := 1
	emptyDescription := ""
	_, err := client.UpdateTask(context.Background(), "11", UpdateTaskParams{
		Status:      &status,
		Description: &emptyDescription, // explicit clear, distinct from "unchanged"
	})
	require.NoError(t, err)
}

func TestDeleteTask(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		assert.Equal(t, "/tasks/11", r.URL.Path)
		w.Write([]byte(`{"data":{}}`))
	})

	require.NoError(t, client.DeleteTask(context.Background(), "11"))
	require.ErrorIs(t, client.DeleteTask(context.Background(), ""), ErrValidation)
}
