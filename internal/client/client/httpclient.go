package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/linkkeeper/internal/common"
	"github.com/dmitrijs2005/linkkeeper/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// Options configures an HTTPClient.
type Options struct {
	// BaseURL is the API root, e.g. https://api.example.com/v1.
	BaseURL string
	// IdentityPath is the identity endpoint relative to BaseURL.
	IdentityPath string
	// APIKey, when set, is sent as ?apiKey= on every request.
	APIKey string
	// Timeout bounds a whole request. Zero means no bound.
	Timeout time.Duration
	// RequestsPerSecond paces outbound requests. Zero disables pacing.
	RequestsPerSecond float64
	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
	Logger    logging.Logger
}

// HTTPClient implements Client over HTTP/JSON with a cookie session.
type HTTPClient struct {
	baseURL      *url.URL
	identityPath string
	apiKey       string
	http         *http.Client
	limiter      *rate.Limiter
	log          logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient validates opts and builds a client with an empty cookie jar.
func NewHTTPClient(opts Options) (*HTTPClient, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	identityPath := opts.IdentityPath
	if identityPath == "" {
		identityPath = "/auth/users/me"
	}

	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	c := &HTTPClient{
		baseURL:      base,
		identityPath: identityPath,
		apiKey:       opts.APIKey,
		http:         &http.Client{Jar: jar, Timeout: opts.Timeout, Transport: opts.Transport},
		log:          log,
	}
	if opts.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return c, nil
}

// errorBody is the error payload shape. Some endpoints use "error".
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *HTTPClient) endpoint(path string) string {
	u := c.baseURL.JoinPath(path)
	if c.apiKey != "" {
		q := u.Query()
		q.Set(common.APIKeyQueryParam, c.apiKey)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// do sends one request. in, if non-nil, is sent as JSON; out, if non-nil,
// receives the decoded 2xx body.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.With("request_id", requestID, "method", method, "path", path)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", "err", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w: %w", method, path, ErrUnavailable, err)
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Method: method, Path: path, Status: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			apiErr.Message = eb.Message
			if apiErr.Message == "" {
				apiErr.Message = eb.Error
			}
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrInvalidResponse, err)
	}
	return nil
}

func invalid(path, reason string) error {
	return fmt.Errorf("%s: %w: %s", path, ErrInvalidResponse, reason)
}
