package client

import (
	"context"
	"net/http"
)

const apiKeyPath = "/users/apikey"

type apiKeyResponse struct {
	APIKey string `json:"apiKey"`
}

// GetAPIKey returns the current key, or "" when none is provisioned.
func (c *HTTPClient) GetAPIKey(ctx context.Context) (string, error) {
	var resp apiKeyResponse
	if err := c.do(ctx, http.MethodGet, apiKeyPath, nil, &resp); err != nil {
		return "", err
	}
	return resp.APIKey, nil
}

// CreateAPIKey provisions a key; the server refuses if one exists.
func (c *HTTPClient) CreateAPIKey(ctx context.Context) (string, error) {
	return c.issueKey(ctx, http.MethodPost)
}

// RegenerateAPIKey replaces the key; the old value stops working.
func (c *HTTPClient) RegenerateAPIKey(ctx context.Context) (string, error) {
	return c.issueKey(ctx, http.MethodPatch)
}

func (c *HTTPClient) DeleteAPIKey(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, apiKeyPath, nil, nil)
}

func (c *HTTPClient) issueKey(ctx context.Context, method string) (string, error) {
	var resp apiKeyResponse
	if err := c.do(ctx, method, apiKeyPath, nil, &resp); err != nil {
		return "", err
	}
	if resp.APIKey == "" {
		return "", invalid(apiKeyPath, "missing apiKey")
	}
	return resp.APIKey, nil
}
