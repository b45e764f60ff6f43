package fizzy

import (
	"errors"
	"fmt"
)

// ErrPaginationCycle is returned when the remote API hands back a next-page
// URL that was already fetched during the same call.
var ErrPaginationCycle = errors.New("fizzy: pagination cycle")

// APIError reports a non-2xx response from the remote API.
type APIError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fizzy returned %d: %s", e.StatusCode, e.Body)
}

// TransportError reports a failure to reach the remote API at all.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fizzy request %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
