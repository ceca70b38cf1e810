package mistral

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingEndpoint is returned when no endpoint URL was configured.
	ErrMissingEndpoint = errors.New("mistral: endpoint not configured")
	// ErrMissingAuthToken is returned when no bearer credential was configured.
	ErrMissingAuthToken = errors.New("mistral: auth token not configured")
	// ErrParseResponse wraps a JSON decode failure on a 2xx response body.
	ErrParseResponse = errors.New("mistral: invalid JSON in endpoint response")
)

// HTTPError reports a non-2xx endpoint response. It carries the status code
// and the (size-limited) response body; no retry is attempted.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("mistral: endpoint returned status %d: %s", e.Status, e.Body)
}

// StatusCode returns the HTTP status, letting serving layers map the error
// to a response code.
func (e *HTTPError) StatusCode() int { return e.Status }

// IsHTTPError reports whether err is (or wraps) an endpoint HTTP error.
func IsHTTPError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}
