package ollama

import (
	"errors"
	"fmt"
)

// ServiceUnavailableError means the service could not be reached at all.
type ServiceUnavailableError struct {
	URL string
	Err error
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("ollama unreachable at %s: %v", e.URL, e.Err)
}

func (e *ServiceUnavailableError) Unwrap() error { return e.Err }

// ServiceError is a non-2xx HTTP response.
type ServiceError struct {
	Status int
	Body   string
}

func (e *ServiceError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("ollama returned %d", e.Status)
	}
	return fmt.Sprintf("ollama returned %d: %s", e.Status, e.Body)
}

// MalformedResponseError is a 2xx response whose body lacks the expected fields.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed ollama response: %s: %v", e.Reason, e.Err)
	}
	return "malformed ollama response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// IsUnavailable reports whether err is (or wraps) a ServiceUnavailableError.
func IsUnavailable(err error) bool {
	var target *ServiceUnavailableError
	return errors.As(err, &target)
}
