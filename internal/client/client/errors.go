package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable marks transport failures: the server could not be reached.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized marks explicit rejection of the credential.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a response the server produced but the client cannot accept:
// a non-2xx status, or a 2xx body with success=false. Message is the
// server's own message and may be empty.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
		if e.StatusCode == http.StatusOK {
			msg = "request rejected"
		}
	}
	if e.RequestID != "" {
		return fmt.Sprintf("api error (status %d, request_id %s): %s", e.StatusCode, e.RequestID, msg)
	}
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, msg)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 and 403 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// StatusCode extracts the HTTP status of an APIError in err's chain, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// ServerMessage extracts the server-supplied message of an APIError in err's
// chain, or "".
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
