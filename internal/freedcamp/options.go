package freedcamp

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// Task status codes as the API defines them.
const (
	StatusNotStarted = "0"
	StatusCompleted  = "1"
	StatusInProgress = "2"
)

// DefaultTaskLimit is the page size used when the caller does not set one.
const DefaultTaskLimit = 200

// TaskListOptions configures a task listing. Zero values produce no query
// parameter: no filter, natural order, first page.
type TaskListOptions struct {
	ProjectID       string   `url:"project_id,omitempty"`
	Status          []string `url:"status[],omitempty"`
	AssignedToIDs   []string `url:"assigned_to_id[],omitempty"`
	CreatedByIDs    []string `url:"created_by_id[],omitempty"`
	DueDateFrom     string   `url:"due_date[from],omitempty"`
	DueDateTo       string   `url:"due_date[to],omitempty"`
	CreatedDateFrom string   `url:"created_date[from],omitempty"`
	CreatedDateTo   string   `url:"created_date[to],omitempty"`
	IncludeArchived bool     `url:"f_with_archived,omitempty,int"`
	ListsStatus     string   `url:"lists_status,omitempty"`
	Limit           int      `url:"limit,omitempty"`
	Offset          int      `url:"offset,omitempty"`

	CustomFields bool `url:"f_cf,omitempty,int"`
	Tags         bool `url:"f_include_tags,omitempty,int"`

	// Ordering serializes as order[<field>]=<direction>; the dynamic key
	// rules it out of struct-tag encoding.
	OrderBy        string `url:"-"`
	OrderDirection string `url:"-"`
}

// values serializes the options into query parameters. List-valued filters
// repeat the bracketed key (status[]=0&status[]=2), matching what the API
// accepts.
func (o TaskListOptions) values() (url.Values, error) {
	if o.Limit == 0 {
		o.Limit = DefaultTaskLimit
	}

	params, err := query.Values(o)
	if err != nil {
		return nil, fmt.Errorf("failed to encode task list options: %w", err)
	}
	params.Set("offset", fmt.Sprintf("%d", o.Offset))

	if o.OrderBy != "" {
		direction := o.OrderDirection
		if direction == "" {
			direction = "asc"
		}
		params.Set(fmt.Sprintf("order[%s]", o.OrderBy), direction)
	}
	return params, nil
}
