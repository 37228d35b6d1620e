package client

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrTimeout marks a request aborted by its hard deadline. The backend may
// be cold-starting a large model, so callers show different guidance for a
// timeout than for a connection failure.
var ErrTimeout = errors.New("request deadline exceeded")

// TransportError means the request never produced an HTTP response:
// connection refused, DNS failure, broken pipe. These are the only errors
// the retry loop retries.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a non-success HTTP response from the backend. It is returned
// to the caller as-is, never retried.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Detail)
}

// IsTimeout reports whether err is a deadline-classified failure.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
