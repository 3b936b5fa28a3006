package freedcamp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/campbridge/freedcamp-mcp/pkg/types"
)

// AppIDTasks is the application id of the tasks app, the usual comment
// target.
const AppIDTasks = "2"

// AddCommentParams carries the fields accepted when commenting on an item.
// The item is addressed by id plus the id of the application it lives in.
type AddCommentParams struct {
	ItemID          string
	AppID           string
	Description     string
	AttachedFileIDs []int
}

// AddComment attaches a comment to an item.
func (c *Client) AddComment(ctx context.Context, params AddCommentParams) (*types.Comment, error) {
	if params.ItemID == "" {
		return nil, fmt.Errorf("%w: item_id is required", ErrValidation)
	}
	if params.AppID == "" {
		return nil, fmt.Errorf("%w: app_id is required", ErrValidation)
	}
	if params.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	body := map[string]any{
		"item_id":     params.ItemID,
		"app_id":      params.AppID,
		"description": params.Description,
	}
	if len(params.AttachedFileIDs) > 0 {
		body["attached_ids"] = params.AttachedFileIDs
	}

	data, err := c.post(ctx, "comments", body)
	if err != nil {
		return nil, err
	}
	return decodeComment(data)
}

// UpdateComment replaces a comment's body.
func (c *Client) UpdateComment(ctx context.Context, commentID, description string) (*types.Comment, error) {
	if commentID == "" {
		return nil, fmt.Errorf("%w: comment_id is required", ErrValidation)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	data, err := c.post(ctx, "comments/"+commentID, map[string]any{"description": description})
	if err != nil {
		return nil, err
	}
	return decodeComment(data)
}

// DeleteComment deletes a comment.
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	if commentID == "" {
		return fmt.Errorf("%w: comment_id is required", ErrValidation)
	}
	_, err := c.delete(ctx, "comments/"+commentID)
	return err
}

func decodeComment(data json.RawMessage) (*types.Comment, error) {
	var payload struct {
		Comments []wireComment `json:"comments"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode comment: %w", err)
	}
	if len(payload.Comments) == 0 {
		return nil, &APIError{Status: 404, Message: "comment not found in response"}
	}

	comment := payload.Comments[0].toComment()
	return &comment, nil
}
