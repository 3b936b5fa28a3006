package freedcamp

import (
	"errors"
	"fmt"
)

// ErrValidation marks caller-supplied parameter problems that are reported
// without contacting the remote API.
var ErrValidation = errors.New("validation error")

// APIError is a non-2xx (or API-level error) response from Freedcamp. The
// remote status and message are surfaced verbatim; no retries are made.
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("freedcamp API error %d (code %d): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("freedcamp API error %d: %s", e.Status, e.Message)
}
