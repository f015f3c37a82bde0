package ghostfolio

import (
	"fmt"
	"net/http"
)

// APIError represents a non-2xx response from the Ghostfolio API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ghostfolio API error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound returns true if the resource does not exist.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsAuthError returns true if the bearer token was rejected.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
