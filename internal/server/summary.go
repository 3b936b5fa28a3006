package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/campbridge/freedcamp-mcp/pkg/types"
)

// Compact text renderings for listing tools. The JSON envelope is available
// behind include_details; the default keeps responses short for the host.

const maxSummaryLines = 3

func statusName(status int) string {
	switch status {
	case 1:
		return "Completed"
	case 2:
		return "In Progress"
	default:
		return "Not Started"
	}
}

func projectsSummary(list *types.ProjectList) string {
	if list == nil || len(list.Groups) == 0 {
		return "No projects found"
	}

	total := 0
	for _, group := range list.Groups {
		total += len(group.Projects)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Projects (%d total)\n", total)
	for _, group := range list.Groups {
		fmt.Fprintf(&b, "\n%s (%d projects):\n", group.Group, len(group.Projects))
		for i, project := range group.Projects {
			if i >= 5 {
				fmt.Fprintf(&b, "  ... and %d more projects\n", len(group.Projects)-5)
				break
			}
			state := "active"
			if !project.Active {
				state = "inactive"
			}
			fmt.Fprintf(&b, "  - %s (id %s, %s, %d tasks, %d users)\n",
				project.Name, project.ID, state, project.TasksCount, project.UsersCount)
		}
	}

	b.WriteString("\nNext steps: get_project_details(project_id), get_project_tasks(project_id)")
	return b.String()
}

func tasksSummary(tasks []types.Task, total int, scope string, now time.Time) string {
	if len(tasks) == 0 {
		return "No tasks found"
	}

	today := now.Truncate(24 * time.Hour)
	var overdue, dueSoon []types.Task
	byStatus := map[string][]types.Task{}
	for _, task := range tasks {
		name := task.StatusTitle
		if name == "" {
			name = statusName(task.Status)
		}
		byStatus[name] = append(byStatus[name], task)

		if task.DueDate == "" || task.Status == 1 {
			continue
		}
		due, err := time.Parse("2006-01-02", task.DueDate)
		if err != nil {
			continue
		}
		days := int(due.Sub(today).Hours() / 24)
		switch {
		case days < 0:
			overdue = append(overdue, task)
		case days <= 2:
			dueSoon = append(dueSoon, task)
		}
	}

	var b strings.Builder
	if scope != "" {
		fmt.Fprintf(&b, "Tasks in %s (%d of %d)\n", scope, len(tasks), total)
	} else {
		fmt.Fprintf(&b, "Tasks (%d of %d)\n", len(tasks), total)
	}

	writeTaskSection(&b, "OVERDUE", overdue)
	writeTaskSection(&b, "DUE SOON", dueSoon)

	for _, name := range []string{"Not Started", "In Progress", "Completed"} {
		writeTaskSection(&b, strings.ToUpper(name), byStatus[name])
		delete(byStatus, name)
	}
	for name, group := range byStatus {
		writeTaskSection(&b, strings.ToUpper(name), group)
	}

	b.WriteString("\nNext steps: get_task_details(task_id) for full details")
	return b.String()
}

func writeTaskSection(b *strings.Builder, title string, tasks []types.Task) {
	if len(tasks) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s (%d):\n", title, len(tasks))
	for i, task := range tasks {
		if i >= maxSummaryLines {
			fmt.Fprintf(b, "  ... and %d more\n", len(tasks)-maxSummaryLines)
			break
		}
		assignee := task.AssignedToName
		if assignee == "" {
			assignee = "Unassigned"
		}
		line := fmt.Sprintf("  - %s (id %s) -> %s", task.Title, task.ID, assignee)
		if task.DueDate != "" {
			line += fmt.Sprintf(", due %s", task.DueDate)
		}
		b.WriteString(line + "\n")
	}
}

func taskDetailSummary(task *types.Task) string {
	status := task.StatusTitle
	if status == "" {
		status = statusName(task.Status)
	}
	assignee := task.AssignedToName
	if assignee == "" {
		assignee = "Unassigned"
	}
	due := task.DueDate
	if due == "" {
		due = "No due date"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Task: %s\n", task.Title)
	fmt.Fprintf(&b, "ID: %s\n", task.ID)
	fmt.Fprintf(&b, "Status: %s\n", status)
	if task.PriorityTitle != "" {
		fmt.Fprintf(&b, "Priority: %s\n", task.PriorityTitle)
	}
	fmt.Fprintf(&b, "Assigned: %s\n", assignee)
	fmt.Fprintf(&b, "Due: %s\n", due)
	if task.CommentsCount > 0 {
		fmt.Fprintf(&b, "Comments: %d\n", task.CommentsCount)
	}
	if task.URL != "" {
		fmt.Fprintf(&b, "URL: %s\n", task.URL)
	}
	b.WriteString("\nUse get_task_details(task_id, include_details=true) for the full record")
	return b.String()
}

func usersSummary(users []types.User) string {
	if len(users) == 0 {
		return "No users found"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Users (%d total)\n", len(users))
	for _, user := range users {
		fmt.Fprintf(&b, "  - %s (id %s)", user.FullName, user.UserID)
		if user.Email != "" {
			fmt.Fprintf(&b, " <%s>", user.Email)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nUse the user_id field for task assignments, never the name")
	return b.String()
}

// paginationHint appends a follow-up call suggestion when more pages exist.
func paginationHint(summary, call string, shown, total, limit, offset int) string {
	if total <= shown+offset {
		return summary
	}
	return summary + fmt.Sprintf("\n\nShowing %d of %d tasks; use %s with offset=%d for more",
		shown, total, call, offset+limit)
}
