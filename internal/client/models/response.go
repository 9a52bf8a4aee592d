package models

// UserResponse is the body of the user-data endpoint.
type UserResponse struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// CarsResponse is the body of the public catalog endpoint.
type CarsResponse struct {
	Success bool   `json:"success"`
	Cars    []Car  `json:"cars,omitempty"`
	Message string `json:"message,omitempty"`
}

// TokenResponse is the body of the login and register endpoints.
type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is the generic {success, message} body.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
