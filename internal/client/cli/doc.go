// Package cli provides the interactive linkkeeper command-line client.
//
// Every command is bound to a route. Before a routed command runs, the
// navigator evaluates the route against the current session: while the
// session is loading only a placeholder is shown, and a route the session
// may not see is replaced by its redirect target. Route changes that follow
// sign-in or sign-out come from session updates, never from the command.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, command and runREPL for details.
package cli
