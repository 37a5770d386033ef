package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidResponse marks a backend reply whose JSON decoded but does not
// match the documented shape.
var ErrInvalidResponse = errors.New("invalid backend response shape")

// APIError is returned for any non-2xx backend status, from either
// endpoint. Both endpoints fail through the same type so the caller
// decides how much detail to surface.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	detail := e.Body
	if detail == "" {
		detail = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("backend %s failed: %d %s", e.Endpoint, e.StatusCode, detail)
}
