package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned before any request is sent when an
// authenticated operation is invoked without a credential.
var ErrUnauthorized = errors.New("unauthorized: no credential")

// Error is the single failure shape produced by the client. HTTP
// failures carry the response status and the body's message field when
// present; transport failures carry status 0 and a generic message.
type Error struct {
	Status  int
	Message string
	Op      string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, e.Message, e.Status)
}

// IsNotFound reports whether err is an HTTP 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == 404
}
