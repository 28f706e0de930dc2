// Package client contains the network side of the linkkeeper CLI.
//
// # Overview
//
// The package provides:
//  1. The API contract consumed by the services, split by concern
//     (AuthAPI, LinksAPI, APIKeyAPI) and joined in Client.
//  2. HTTPClient, the one place that talks HTTP: it resolves paths against the
//     configured base URL, keeps the session cookie in a jar, adds a request
//     id, encodes and decodes JSON, paces requests and turns non-2xx answers
//     into *Error values.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     SQLite state file and applying the embedded goose migrations.
//
// # Error Handling
//
// Non-2xx answers come back as *Error. Its Unwrap maps the status onto the
// sentinels ErrUnauthorized (401/403), ErrNotFound (404), ErrUnavailable (5xx)
// and ErrRejected (other 4xx). Transport failures wrap ErrUnavailable and a
// payload that does not match the expected schema wraps ErrInvalidResponse.
// Message extracts the server's message for display.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Every call takes a context.Context;
// no deadline is added unless a request timeout is configured. Nothing is
// retried.
package client
