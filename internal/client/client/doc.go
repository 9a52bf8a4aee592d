// Package client talks to the marketplace HTTP API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (the Client interface): FetchUser,
//     FetchCars, AddCar, Login and Register.
//  2. An HTTP/JSON implementation (HTTPClient). Authenticated calls ask the
//     shared authn.Authenticator for the Authorization header at build time;
//     public calls never carry it. Every request carries an X-Request-ID.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx responses and bodies with
// success=false are returned as *APIError; 401/403 also match
// ErrUnauthorized through errors.Is.
package client
