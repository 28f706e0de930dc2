// Package services holds the client-side state containers behind the REPL:
// the session store, the link collection store, the API key store and the
// short-link resolver.
//
// Each store owns its state behind a mutex and talks to the remote API only
// through the client package interfaces. Network and parsing failures are
// converted to *Error values carrying a user-facing message at the operation
// boundary; nothing is retried automatically.
package services
