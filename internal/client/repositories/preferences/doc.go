// Package preferences persists small client-side settings (theme, last valid
// route, selected short domain) in the local SQLite state file.
//
// The table is created by the embedded goose migrations in
// internal/client/migrations. Values are plain strings; callers own parsing.
package preferences
