package remote

import (
	"errors"
	"fmt"
)

// Category is the normalized failure class of a remote call.
//
// Every category means "the remote call failed" to the service layer: reads
// fall back, writes surface a generic error. Categories exist for logs and
// metrics.
type Category string

const (
	// CategoryUnavailable means the remote store could not be reached.
	CategoryUnavailable Category = "unavailable"

	// CategoryTimeout means the remote store did not answer in time.
	CategoryTimeout Category = "timeout"

	// CategoryBadStatus means the remote store answered with a non-2xx status.
	CategoryBadStatus Category = "bad_status"

	// CategoryMalformed means a 2xx answer whose body was not the expected JSON.
	CategoryMalformed Category = "malformed"

	// CategoryBadRequest means the outbound request could not be built.
	CategoryBadRequest Category = "bad_request"

	// CategoryCircuitOpen is reported by callers that skipped the call because
	// the read breaker was open.
	CategoryCircuitOpen Category = "circuit_open"
)

// RemoteError wraps a failed remote call.
type RemoteError struct {
	Category   Category
	Operation  string
	Message    string
	StatusCode int
	Underlying error
}

func (e *RemoteError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("remote %s [%s]: %s: %v", e.Operation, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("remote %s [%s]: %s", e.Operation, e.Category, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Underlying
}

func newRemoteError(category Category, operation, message string, underlying error) *RemoteError {
	return &RemoteError{
		Category:   category,
		Operation:  operation,
		Message:    message,
		Underlying: underlying,
	}
}

// CategoryOf returns the category of a RemoteError anywhere in err's chain,
// or CategoryUnavailable for any other non-nil error.
func CategoryOf(err error) Category {
	if err == nil {
		return ""
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Category
	}
	return CategoryUnavailable
}
