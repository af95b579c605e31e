package api

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated reports an HTTP 401. By the time a caller sees it
	// the local credentials are already cleared and the registered logout
	// hook has fired. Callers must not retry.
	ErrUnauthenticated = errors.New("your session has expired, please log in again")

	// ErrUnreachable reports a transport-level failure (DNS, refused
	// connection, broken pipe) that is not a cancellation.
	ErrUnreachable = errors.New("unable to reach the API, please try again")
)

// APIError is a non-2xx response the server rejected with a message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// IsCancelled reports whether err is the caller abandoning the request.
// Such errors are a no-op: no notification, no state change.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// UserMessage extracts the text worth showing in a notification. For
// APIError that is the server's own message; sentinels render themselves.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
