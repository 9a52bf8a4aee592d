// Package session owns the authenticated session of the client.
//
// The session is an explicit state machine. Machine.Step is a pure function
// from (state, event) to (state, effects); Controller feeds it events from a
// single goroutine and carries out the effects in order: storage I/O, the
// Authorization header, profile fetches, notices and navigation.
//
// Bootstrap reads the stored credential once (Mount). Malformed credentials
// are cleared without a network call. A well-formed one is applied to the
// outgoing header before its profile is fetched. Profile fetches are tagged
// with a generation; a response whose generation is not current is dropped,
// so a slow answer for a replaced credential can never overwrite the newer
// session. Bootstrapping ends exactly once, at the first settle.
package session
