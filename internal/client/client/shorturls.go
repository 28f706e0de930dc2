package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/linkkeeper/internal/client/models"
)

type listResponse struct {
	ShortURLs []models.ShortLink `json:"shortUrls"`
}

type infoResponse struct {
	ShortURL *models.ShortLink `json:"shortUrl"`
}

type createResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListShortURLs returns the caller's links in server order. A 404 comes back
// as an error matching ErrNotFound; deciding what that means is up to the caller.
func (c *HTTPClient) ListShortURLs(ctx context.Context) ([]models.ShortLink, error) {
	var resp listResponse
	if err := c.do(ctx, http.MethodGet, "/shorturls", nil, &resp); err != nil {
		return nil, err
	}
	if resp.ShortURLs == nil {
		return []models.ShortLink{}, nil
	}
	return resp.ShortURLs, nil
}

// ResolveShortURL looks a slug up through the public info endpoint.
func (c *HTTPClient) ResolveShortURL(ctx context.Context, slug string) (*models.ShortLink, error) {
	path := "/shorturls/info/" + url.PathEscape(slug)
	var resp infoResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.ShortURL == nil || strings.TrimSpace(resp.ShortURL.Full) == "" {
		return nil, invalid(path, "missing full url")
	}
	return resp.ShortURL, nil
}

// CreateShortURL posts a draft. The service can answer 2xx with
// success=false; that is reported as a rejection carrying its message.
func (c *HTTPClient) CreateShortURL(ctx context.Context, draft models.LinkDraft) error {
	var resp createResponse
	if err := c.do(ctx, http.MethodPost, "/shorturls", draft, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &Error{Method: http.MethodPost, Path: "/shorturls", Status: http.StatusUnprocessableEntity, Message: resp.Message}
	}
	return nil
}

func (c *HTTPClient) UpdateShortURL(ctx context.Context, id string, draft models.LinkDraft) error {
	if id == "" {
		return errors.New("update short url: empty id")
	}
	return c.do(ctx, http.MethodPatch, "/shorturls/"+url.PathEscape(id), draft, nil)
}

func (c *HTTPClient) DeleteShortURL(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("delete short url: empty id")
	}
	return c.do(ctx, http.MethodDelete, "/shorturls/"+url.PathEscape(id), nil, nil)
}
