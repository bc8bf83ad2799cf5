// Package cli provides the interactive inventory command-line client.
//
// It wires configuration, the local session database, the API client and
// the dashboard controllers, then runs a REPL until the user exits.
// Typical flow: restore a saved session, load items and tags, execute
// commands.
//
// Key features:
//   - Login / Register / Logout with a persisted session
//   - List, filter and search items; toggle tag filters
//   - Add, edit and delete items; step quantity and used counts
//   - Create and delete tags
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
