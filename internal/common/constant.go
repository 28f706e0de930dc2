// Package common contains constants and helpers shared by the client layers.
package common

const (
	// RequestIDHeader carries a per-request correlation id on outbound calls.
	RequestIDHeader = "X-Request-ID"

	// APIKeyQueryParam is the query parameter the service reads an API key from.
	APIKeyQueryParam = "apiKey"
)
