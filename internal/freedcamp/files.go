package freedcamp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/campbridge/freedcamp-mcp/pkg/types"
)

// GetFile returns metadata for one file.
func (c *Client) GetFile(ctx context.Context, fileID string) (*types.File, error) {
	if fileID == "" {
		return nil, fmt.Errorf("%w: file_id is required", ErrValidation)
	}

	data, err := c.get(ctx, "files/"+fileID, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Files []wireFile `json:"files"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode file: %w", err)
	}
	if len(payload.Files) == 0 {
		return nil, &APIError{Status: 404, Message: "file not found"}
	}

	file := payload.Files[0].toFile()
	if file.Location == "" {
		file.Location = "storage"
	}
	return &file, nil
}

// DeleteFile deletes a file.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if fileID == "" {
		return fmt.Errorf("%w: file_id is required", ErrValidation)
	}
	_, err := c.delete(ctx, "files/"+fileID)
	return err
}
