package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"social-growth-backend/internal/config"
	"social-growth-backend/internal/domain"
)

// Client talks to the hosted record store's REST row API. Every request
// carries the anon key plus the session's bearer credential, so row
// access stays scoped by the service identity.
type Client struct {
	baseURL string
	anonKey string
	session *Session
	http    *http.Client
}

func NewClient(cfg config.StoreConfig, session *Session) *Client {
	return &Client{
		baseURL: cfg.URL,
		anonKey: cfg.AnonKey,
		session: session,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Session exposes the underlying credential provider.
func (c *Client) Session() *Session { return c.session }

// Select fetches rows matching the equality filters, decoded into out
// (a pointer to a slice). limit <= 0 means no limit.
func (c *Client) Select(ctx context.Context, table, columns string, filters map[string]string, limit int, out any) error {
	q := url.Values{}
	if columns == "" {
		columns = "*"
	}
	q.Set("select", columns)
	for k, v := range filters {
		q.Set(k, "eq."+v)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	raw, err := c.do(ctx, http.MethodGet, table, q, nil, false)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s rows: %v", domain.ErrStoreFailure, table, err)
	}
	return nil
}

// Insert writes a row and, when out is non-nil, decodes the returned
// representation (an array) into it.
func (c *Client) Insert(ctx context.Context, table string, payload, out any) error {
	return c.write(ctx, http.MethodPost, table, nil, payload, out)
}

// Update patches rows matching the equality filters; out, when non-nil,
// receives the updated rows. Zero matched rows is not an error here —
// callers that need "did anything change" decode into a slice.
func (c *Client) Update(ctx context.Context, table string, filters map[string]string, payload, out any) error {
	q := url.Values{}
	for k, v := range filters {
		q.Set(k, "eq."+v)
	}
	return c.write(ctx, http.MethodPatch, table, q, payload, out)
}

func (c *Client) write(ctx context.Context, method, table string, q url.Values, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal %s row: %v", domain.ErrStoreFailure, table, err)
	}
	raw, err := c.do(ctx, method, table, q, body, out != nil)
	if err != nil {
		return err
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%w: decode %s representation: %v", domain.ErrStoreFailure, table, err)
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, table string, q url.Values, body []byte, representation bool) ([]byte, error) {
	token, err := c.session.Token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/rest/v1/" + table
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: build %s request: %v", domain.ErrStoreFailure, table, err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if representation {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrStoreFailure, method, table, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %v", domain.ErrStoreFailure, table, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s %s status %d", domain.ErrStoreFailure, method, table, resp.StatusCode)
	}
	return raw, nil
}
