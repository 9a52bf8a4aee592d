// Package credential owns the single persisted bearer credential: reading,
// writing and clearing it, and checking its structural shape.
//
// Contents are never verified client-side; the server is the authority.
// Inspect decodes claims for display only.
package credential

import (
	"strings"
)

// Credential is an opaque bearer token. The zero value means "absent".
type Credential string

// Present reports whether c holds a value.
func (c Credential) Present() bool {
	return c != ""
}

// Redacted returns a form safe for logs: the last six characters only.
func (c Credential) Redacted() string {
	if len(c) <= 6 {
		return strings.Repeat("*", len(c))
	}
	return "…" + string(c[len(c)-6:])
}

// ValidateShape reports whether raw splits on "." into exactly three
// non-empty segments (header.payload.signature).
func ValidateShape(raw string) bool {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}
