package powerbi

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a non-success response from the Power BI REST API.
// It carries the status code and response body verbatim for diagnosis and
// unwraps to the domain sentinel for the operation that failed
// (domain.ErrRefreshTrigger or domain.ErrStatusQuery).
type APIError struct {
	StatusCode int
	Body       string
	URL        string

	op error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("powerbi: %v: status %d: %s (URL: %s)", e.op, e.StatusCode, e.Body, e.URL)
}

func (e *APIError) Unwrap() error {
	return e.op
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound checks if the error indicates the workspace or dataset
// does not exist or is not visible to the service principal.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsThrottled checks if the error indicates the service rejected the
// request because of throttling or an already running refresh.
func IsThrottled(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}
