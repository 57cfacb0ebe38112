package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrUnauthorized is returned on HTTP 401, after the session's
// OnUnauthorized hook has run.
var ErrUnauthorized = errors.New("unauthorized")

// Session supplies the bearer token and reacts to its expiry. Injecting it
// keeps the client testable without reaching into ambient storage.
type Session interface {
	Token() string
	OnUnauthorized()
}

// APIError is a non-2xx response. Detail carries the server's
// detail/message/error body field, or the raw response text when the body is
// not JSON.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
}

// Client is a generic JSON API client. Identical in-flight GETs are deduped
// so concurrently rendering widgets with the same query share one request.
type Client struct {
	BaseURL string
	Session Session
	HTTP    *http.Client
	Logger  *zap.Logger

	group singleflight.Group
}

func NewClient(baseURL string, session Session, logger *zap.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Session: session,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Logger:  logger,
	}
}

// Do performs one request. A non-nil body is serialized as JSON; a non-nil
// out receives the decoded response body.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	raw, err := c.roundTrip(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// Get fetches a resource, deduplicating identical in-flight requests by
// method, path and query.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	key := "GET " + path + "?" + query.Encode()
	rawIface, err, _ := c.group.Do(key, func() (interface{}, error) {
		return c.roundTrip(ctx, http.MethodGet, path, query, nil)
	})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	raw := rawIface.([]byte)
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode GET %s response: %w", path, err)
	}
	return nil
}

// GetWithRetry retries a failed GET a fixed number of times. Unauthorized
// responses are never retried.
func (c *Client) GetWithRetry(ctx context.Context, path string, query url.Values, out interface{}, retries int) error {
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		err = c.Get(ctx, path, query, out)
		if err == nil || errors.Is(err, ErrUnauthorized) {
			return err
		}
		c.Logger.Warn("request failed, retrying",
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Session != nil {
		if token := c.Session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.Session != nil {
			c.Session.OnUnauthorized()
		}
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Detail: errorDetail(raw)}
	}
	return raw, nil
}

// errorDetail extracts the server's detail, message or error field from a
// JSON error body, falling back to the raw text.
func errorDetail(raw []byte) string {
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, key := range []string{"detail", "message", "error"} {
			if v, ok := body[key].(string); ok && v != "" {
				return v
			}
		}
	}
	return strings.TrimSpace(string(raw))
}
