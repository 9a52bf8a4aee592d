// Package common defines shared constants and sentinel errors used across
// client layers of carrental. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrorNotFound = errors.New("not found")

	// Credential errors.
	ErrMalformedCredential = errors.New("malformed credential")

	// Session errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionClosed    = errors.New("session controller stopped")
)
