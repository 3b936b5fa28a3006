package freedcamp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/campbridge/freedcamp-mcp/pkg/types"
)

// UpdateCurrentUserParams carries the fields accepted when updating the
// authenticated user. ConfirmationPassword is the current password,
// required by the API when changing email or password.
type UpdateCurrentUserParams struct {
	Email                string
	Password             string
	FirstName            string
	LastName             string
	ConfirmationPassword string
	Timezone             string
}

// CurrentUserUpdate is the result of UpdateCurrentUser. NewToken is set
// when the API rotates the authentication token (email/password changes).
type CurrentUserUpdate struct {
	User     json.RawMessage `json:"user,omitempty"`
	NewToken string          `json:"new_token,omitempty"`
}

type usersPayload struct {
	Users []wireUser `json:"users"`
	Token string     `json:"token"`
}

// ListUsers returns all users in the workspace.
func (c *Client) ListUsers(ctx context.Context) ([]types.User, error) {
	data, err := c.get(ctx, "users", nil)
	if err != nil {
		return nil, err
	}

	var payload usersPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	users := make([]types.User, 0, len(payload.Users))
	for _, wu := range payload.Users {
		users = append(users, wu.toUser())
	}
	return users, nil
}

// GetCurrentUser returns the authenticated user.
func (c *Client) GetCurrentUser(ctx context.Context) (*types.User, error) {
	return c.getUser(ctx, "users/current")
}

// GetUser returns one user by id.
func (c *Client) GetUser(ctx context.Context, userID string) (*types.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	return c.getUser(ctx, "users/"+userID)
}

func (c *Client) getUser(ctx context.Context, endpoint string) (*types.User, error) {
	data, err := c.get(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var payload usersPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	if len(payload.Users) == 0 {
		return nil, &APIError{Status: 404, Message: "user not found"}
	}

	user := payload.Users[0].toUser()
	return &user, nil
}

// UpdateCurrentUser updates the authenticated user's profile.
func (c *Client) UpdateCurrentUser(ctx context.Context, params UpdateCurrentUserParams) (*CurrentUserUpdate, error) {
	body := map[string]any{}
	if params.Email != "" {
		body["email"] = params.Email
	}
	if params.Password != "" {
		body["password"] = params.Password
	}
	if params.FirstName != "" {
		body["first_name"] = params.FirstName
	}
	if params.LastName != "" {
		body["last_name"] = params.LastName
	}
	if params.ConfirmationPassword != "" {
		body["confirmation_password"] = params.ConfirmationPassword
	}
	if params.Timezone != "" {
		body["timezone"] = params.Timezone
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	data, err := c.post(ctx, "users/current", body)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Users []json.RawMessage `json:"users"`
		Token string            `json:"token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode user update: %w", err)
	}

	update := &CurrentUserUpdate{NewToken: payload.Token}
	if len(payload.Users) > 0 {
		update.User = payload.Users[0]
	}
	return update, nil
}
