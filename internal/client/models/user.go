// Package models defines the client-side data models of the marketplace:
// users, cars, listings, and the JSON envelopes the API answers with.
package models

// Role classifies what a user may do on the marketplace.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleCustomer Role = "customer"
)

// User is the authenticated profile returned by the user-data endpoint.
// Profile fields beyond ID and Role are informational.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Image string `json:"image,omitempty"`
}

// IsOwner reports whether the user may list cars.
func (u *User) IsOwner() bool {
	return u != nil && u.Role == RoleOwner
}
