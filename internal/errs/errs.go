package errs

import (
	"errors"
	"fmt"
)

var ErrOrderNotFound = errors.New("order not found")
var ErrNoPendingDelete = errors.New("no delete is pending confirmation")

// HTTPError is a non-2xx response from the order store. Message carries the
// server-provided error text when the body was decodable.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("order store returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("order store returned status %d: %s", e.StatusCode, e.Message)
}
