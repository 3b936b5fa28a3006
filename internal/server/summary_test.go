package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/campbridge/freedcamp-mcp/pkg/types"
)

func TestTasksSummary_FlagsOverdueAndDueSoon(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tasks := []types.Task{
		{ID: "1", Title: "Late", Status: 0, DueDate: "2026-03-01"},
		{ID: "2", Title: "Soon", Status: 2, DueDate: "2026-03-11", AssignedToName: "Ada L"},
		{ID: "3", Title: "Done late", Status: 1, DueDate: "2026-03-01"},
		{ID: "4", Title: "Far out", Status: 0, DueDate: "2026-06-01"},
	}

	summary := tasksSummary(tasks, 4, "Alpha", now)

	assert.Contains(t, summary, "Tasks in Alpha (4 of 4)")
	assert.Contains(t, summary, "OVERDUE (1):")
	assert.Contains(t, summary, "Late (id 1)")
	assert.Contains(t, summary, "DUE SOON (1):")
	assert.Contains(t, summary, "Soon (id 2) -> Ada L, due 2026-03-11")
	// Completed tasks never count as overdue.
	assert.Contains(t, summary, "COMPLETED (1):")
	assert.Contains(t, summary, "NOT STARTED (2):")
}

func TestTasksSummary_Empty(t *testing.T) {
	assert.Equal(t, "No tasks found", tasksSummary(nil, 0, "Alpha", time.Now()))
}

func TestTasksSummary_TruncatesLongSections(t *testing.T) {
	var tasks []types.Task
	for i := 0; i < 6; i++ {
		tasks = append(tasks, types.Task{ID: "t", Title: "Task", Status: 0})
	}

	summary := tasksSummary(tasks, 6, "", time.Now())
	assert.Contains(t, summary, "... and 3 more")
}

func TestPaginationHint(t *testing.T) {
	assert.Equal(t, "summary", paginationHint("summary", "get_all_tasks()", 5, 5, 5, 0))

	hinted := paginationHint("summary", "get_all_tasks()", 5, 12, 5, 0)
	assert.Contains(t, hinted, "Showing 5 of 12 tasks")
	assert.Contains(t, hinted, "offset=5")
}

func TestUsersSummary(t *testing.T) {
	summary := usersSummary([]types.User{
		{UserID: "456", FullName: "Ada L", Email: "ada@example.com"},
		{UserID: "457", FullName: "Grace H"},
	})

	assert.Contains(t, summary, "Users (2 total)")
	assert.Contains(t, summary, "Ada L (id 456) <ada@example.com>")
	assert.Contains(t, summary, "Grace H (id 457)")
	assert.Contains(t, summary, "never the name")
}

func TestTaskDetailSummary(t *testing.T) {
	summary := taskDetailSummary(&types.Task{
		ID:            "11",
		Title:         "Ship it",
		Status:        2,
		PriorityTitle: "High",
		CommentsCount: 3,
	})

	assert.Contains(t, summary, "Task: Ship it")
	assert.Contains(t, summary, "Status: In Progress")
	assert.Contains(t, summary, "Priority: High")
	assert.Contains(t, summary, "Assigned: Unassigned")
	assert.Contains(t, summary, "Due: No due date")
	assert.Contains(t, summary, "Comments: 3")
}
