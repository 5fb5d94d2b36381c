package remote

import (
	"fmt"
	"net/http"
)

// Outcome is the result of one call to the remote store:
// Success, TransportError or HTTPError.
type Outcome interface {
	// Err is nil for Success and a descriptive error otherwise.
	Err() error
	isOutcome()
}

// Success is any 2xx response.
type Success struct {
	Status int
	Body   []byte
}

// TransportError means no response was received (dial, DNS, timeout...).
type TransportError struct {
	Cause error
}

// HTTPError is a response outside the 2xx range.
type HTTPError struct {
	Status int
}

func (Success) Err() error { return nil }

func (e TransportError) Err() error {
	return fmt.Errorf("remote unreachable: %w", e.Cause)
}

func (e HTTPError) Err() error {
	return fmt.Errorf("Server response not OK (%d %s)", e.Status, http.StatusText(e.Status))
}

func (Success) isOutcome()        {}
func (TransportError) isOutcome() {}
func (HTTPError) isOutcome()      {}

// OK reports whether o is a Success.
func OK(o Outcome) bool {
	_, ok := o.(Success)
	return ok
}

// Kind names the outcome variant for logs.
func Kind(o Outcome) string {
	switch o.(type) {
	case Success:
		return "success"
	case TransportError:
		return "transport_error"
	case HTTPError:
		return "http_error"
	default:
		return "unknown"
	}
}
