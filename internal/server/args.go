package server

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/campbridge/freedcamp-mcp/internal/freedcamp"
)

// Optional-argument helpers. Tool updates must distinguish "not provided"
// from "provided empty", so these return pointers; a present value of the
// wrong type is a validation error, reported without touching the network.

func optString(req mcp.CallToolRequest, key string) (*string, error) {
	value, ok := req.GetArguments()[key]
	if !ok || value == nil {
		return nil, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a string", freedcamp.ErrValidation, key)
	}
	return &s, nil
}

func optInt(req mcp.CallToolRequest, key string) (*int, error) {
	value, ok := req.GetArguments()[key]
	if !ok || value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case float64:
		n := int(v)
		return &n, nil
	case int:
		return &v, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be an integer", freedcamp.ErrValidation, key)
		}
		i := int(n)
		return &i, nil
	default:
		return nil, fmt.Errorf("%w: %s must be an integer", freedcamp.ErrValidation, key)
	}
}

func optBool(req mcp.CallToolRequest, key string) (*bool, error) {
	value, ok := req.GetArguments()[key]
	if !ok || value == nil {
		return nil, nil
	}
	b, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a boolean", freedcamp.ErrValidation, key)
	}
	return &b, nil
}

// intSlice reads an array of integers (attached file ids).
func intSlice(req mcp.CallToolRequest, key string) ([]int, error) {
	value, ok := req.GetArguments()[key]
	if !ok || value == nil {
		return nil, nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an array of integers", freedcamp.ErrValidation, key)
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		n, ok := item.(float64)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be an array of integers", freedcamp.ErrValidation, key)
		}
		out = append(out, int(n))
	}
	return out, nil
}

// rawMessage re-encodes a structured argument (custom field payloads) for
// pass-through to the API.
func rawMessage(req mcp.CallToolRequest, key string) (json.RawMessage, error) {
	value, ok := req.GetArguments()[key]
	if !ok || value == nil {
		return nil, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not serializable", freedcamp.ErrValidation, key)
	}
	return raw, nil
}

// memberSlice reads an array of project member objects.
func memberSlice(req mcp.CallToolRequest, key string) ([]freedcamp.ProjectMember, error) {
	value, ok := req.GetArguments()[key]
	if !ok || value == nil {
		return nil, nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an array of user objects", freedcamp.ErrValidation, key)
	}
	members := make([]freedcamp.ProjectMember, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("%w: %s entries must be objects", freedcamp.ErrValidation, key)
		}
		var member freedcamp.ProjectMember
		if err := json.Unmarshal(raw, &member); err != nil {
			return nil, fmt.Errorf("%w: %s entries must be objects", freedcamp.ErrValidation, key)
		}
		members = append(members, member)
	}
	return members, nil
}
