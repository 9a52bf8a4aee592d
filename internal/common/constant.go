// Package common contains shared constants and sentinel errors used across
// carrental client components.
package common

const (
	// AuthorizationHeaderName is the HTTP header carrying the bearer credential.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix is prepended to the credential on the wire, exactly once.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName tags every outbound request for server-side tracing.
	RequestIDHeaderName = "X-Request-ID"

	// CredentialKey is the storage key holding the raw persisted credential.
	CredentialKey = "token"

	// CredentialSavedAtKey holds the RFC3339 time the credential was written.
	CredentialSavedAtKey = "token_saved_at"
)
