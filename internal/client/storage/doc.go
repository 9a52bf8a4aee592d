// Package storage is the client's local persistence layer.
//
// A single SQLite database (pure-Go modernc.org/sqlite driver) is opened by
// Open and migrated with goose from the embedded migrations package. It
// holds two tables:
//
//   - client_state: key/value pairs; the persisted credential lives under
//     common.CredentialKey. Absence of that key means "logged out".
//   - catalog_cache: the last catalog fetched successfully, in server order.
//
// Repositories accept dbx.DBTX where they can run inside a caller's
// transaction (StateRepository) and *sql.DB where they manage their own
// (CatalogCache).
package storage
