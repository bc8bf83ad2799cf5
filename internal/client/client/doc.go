// Package client talks to the remote inventory service.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) with one
//     method per resource operation: items, tags, search and auth.
//  2. HTTPClient, the JSON-over-HTTP implementation. It attaches
//     "Authorization: Bearer <token>" to protected calls whenever the
//     configured TokenSource yields a token, tags each request with an
//     X-Request-ID, and decodes 2xx bodies verbatim.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     session database, applying embedded goose migrations to sqlite.
//
// # Error Handling
//
// Every failure is a *RequestError. Its Message comes from the JSON body's
// "message" field when the server sent one, otherwise from a fixed fallback
// for the operation. Transport failures use the same fallback with Status 0.
// A 401 additionally matches ErrUnauthorized via errors.Is.
//
// No retries are attempted and no default timeout is imposed; callers bound
// requests through context.Context or the configured *http.Client.
package client
