// Package cli provides the interactive car rental command-line client.
//
// It wires configuration, local storage, the marketplace API and the session
// controller, then runs a REPL. The saved session is restored in the
// background while the catalog loads; the prompt shows "(...)" until that
// finishes.
//
// Key features:
//   - Register / Login / Logout
//   - Browse the car catalog, online or from the local cache
//   - List a new car (owners)
//   - Location tracking, with login-gated locations resumed after login
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and appstate.AppState for details.
package cli
