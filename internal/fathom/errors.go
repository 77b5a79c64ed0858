package fathom

import (
	"errors"
	"fmt"
)

// ErrRetriesExhausted is wrapped by errors returned when a request kept
// failing transiently until the attempt budget ran out.
var ErrRetriesExhausted = errors.New("retries exhausted")

// HTTPError is a definitive, non-retryable HTTP error status from the
// upstream API, e.g. 404 or 410 for deleted recordings. The status code is
// preserved for caller inspection.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fathom API returned HTTP %d %s", e.StatusCode, e.Status)
}

// IsTerminal reports whether err carries a terminal HTTP error status.
func IsTerminal(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr)
}
