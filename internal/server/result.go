package server

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/campbridge/freedcamp-mcp/pkg/types"
)

// okResult renders a success envelope as indented JSON text content.
func okResult(data any, message string) *mcp.CallToolResult {
	return mcp.NewToolResultText(marshalEnvelope(types.Result{
		Success: true,
		Data:    data,
		Message: message,
	}))
}

// errResult renders a failure envelope. Remote and transport errors carry
// whatever the facade reported, verbatim.
func errResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(marshalEnvelope(types.Result{
		Success: false,
		Error:   err.Error(),
	}))
}

func marshalEnvelope(result types.Result) string {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		// Result shapes are plain data; this only fires on programmer error.
		return fmt.Sprintf(`{"success": false, "error": %q}`, err.Error())
	}
	return string(out)
}
