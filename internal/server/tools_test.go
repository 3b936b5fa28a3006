package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campbridge/freedcamp-mcp/internal/freedcamp"
)

func newTestHandler(t *testing.T, fn http.HandlerFunc) *Handler {
	t.Helper()
	mockServer := httptest.NewServer(fn)
	t.Cleanup(mockServer.Close)

	client := freedcamp.NewClient(mockServer.URL, "test-key", "", 5*time.Second, zap.NewNop())
	return &Handler{client: client, logger: zap.NewNop()}
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, result *mcp.CallToolResult) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &env))
	return env
}

func TestCreateTaskTool_SuccessEnvelope(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		var body map[string]any
		require.NoError(t, json.Unmarshal([]byte(r.PostForm.Get("data")), &body))
		assert.Equal(t, "Ship it", body["title"])
		assert.Equal(t, "123", body["project_id"])
		assert.Equal(t, "3", body["priority"])

		w.Write([]byte(`{"data":{"task":{"id":"999","title":"Ship it"}}}`))
	})

	result, err := h.createTask(context.Background(), callRequest("create_task", map[string]any{
		"title":      "Ship it",
		"project_id": "123",
		"priority":   3,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	env := decodeEnvelope(t, result)
	assert.True(t, env.Success)
	assert.Equal(t, "Task created successfully", env.Message)
	assert.Contains(t, string(env.Data), `"999"`)
}

func TestCreateTaskTool_MissingArgumentSkipsNetwork(t *testing.T) {
	called := false
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	result, err := h.createTask(context.Background(), callRequest("create_task", map[string]any{
		"title": "no project",
	}))
	require.NoError(t, err)
	require.True(t, result.IsError)

	env := decodeEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "project_id")
	assert.False(t, called, "argument errors must not reach the API")
}

func TestGetProjectDetailsTool_RemoteErrorEnvelope(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"data":null,"http_code":403,"error_code":101,"msg":"no access to project"}`))
	})

	result, err := h.getProjectDetails(context.Background(), callRequest("get_project_details", map[string]any{
		"project_id": "123",
	}))
	require.NoError(t, err, "remote failures surface through the envelope, not the protocol")
	require.True(t, result.IsError)

	env := decodeEnvelope(t, result)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "403")
	assert.Contains(t, env.Error, "no access to project")
}

func TestGetProjectsTool_SummaryText(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"projects":[
			{"id":"1","project_name":"Alpha","group_name":"Engineering","f_active":true,"tasks_count":4},
			{"id":"2","project_name":"Beta","group_name":"Engineering","f_active":false}
		]}}`))
	})

	result, err := h.getProjects(context.Background(), callRequest("get_projects", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Projects (2 total)")
	assert.Contains(t, text, "Engineering (2 projects):")
	assert.Contains(t, text, "Alpha (id 1, active, 4 tasks")
	assert.Contains(t, text, "Beta (id 2, inactive")
	assert.Contains(t, text, "get_project_details(project_id)")
}

func TestGetProjectsTool_DetailsEnvelope(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"projects":[{"id":"1","project_name":"Alpha"}]}}`))
	})

	result, err := h.getProjects(context.Background(), callRequest("get_projects", map[string]any{
		"include_details": true,
	}))
	require.NoError(t, err)

	env := decodeEnvelope(t, result)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"Alpha"`)
}

func TestGetUserTasksTool_HidesCompletedByDefault(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tasks":
			query := r.URL.Query()
			assert.Equal(t, []string{"456"}, query["assigned_to_id[]"])
			assert.ElementsMatch(t, []string{freedcamp.StatusNotStarted, freedcamp.StatusInProgress}, query["status[]"])
			w.Write([]byte(`{"data":{"tasks":[{"id":"11","title":"Open item","status":0}],"meta":{"total":1}}}`))
		case "/users/456":
			w.Write([]byte(`{"data":{"users":[{"user_id":"456","full_name":"Ada L"}]}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	result, err := h.getUserTasks(context.Background(), callRequest("get_user_tasks", map[string]any{
		"user_id": "456",
	}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, "Ada L's workspace")
	assert.Contains(t, text, "Open item")
}

func TestGetProjectTasksTool_PaginationHint(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tasks":
			assert.Equal(t, "2", r.URL.Query().Get("limit"))
			w.Write([]byte(`{"data":{"tasks":[
				{"id":"11","title":"One","status":0},
				{"id":"12","title":"Two","status":0}
			],"meta":{"total":5,"limit":2,"offset":0}}}`))
		case "/projects/123":
			w.Write([]byte(`{"data":{"projects":[{"id":"123","project_name":"Alpha"}]}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	result, err := h.getProjectTasks(context.Background(), callRequest("get_project_tasks", map[string]any{
		"project_id": "123",
		"limit":      2,
	}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, "Tasks in Alpha (2 of 5)")
	assert.Contains(t, text, "offset=2")
}

func TestDeleteTaskTool(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		assert.Equal(t, "/tasks/11", r.URL.Path)
		w.Write([]byte(`{"data":{}}`))
	})

	result, err := h.deleteTask(context.Background(), callRequest("delete_task", map[string]any{
		"task_id": "11",
	}))
	require.NoError(t, err)

	env := decodeEnvelope(t, result)
	assert.True(t, env.Success)
	assert.Equal(t, "Task deleted successfully", env.Message)
}
