package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"social-growth-backend/internal/domain"
)

const defaultEndpoint = "https://api.resend.com/emails"

// Client is a thin client for the transactional email API.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		endpoint: defaultEndpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithEndpoint is used by tests to point at a stub server.
func NewClientWithEndpoint(apiKey, endpoint string) *Client {
	c := NewClient(apiKey)
	c.endpoint = strings.TrimRight(endpoint, "/")
	return c
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers one rendered message. Failures wrap
// domain.ErrEmailFailure; callers log them and move on.
func (c *Client) Send(ctx context.Context, from, to, subject, html string) error {
	body, err := json.Marshal(sendRequest{From: from, To: []string{to}, Subject: subject, HTML: html})
	if err != nil {
		return fmt.Errorf("%w: marshal send request: %v", domain.ErrEmailFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build send request: %v", domain.ErrEmailFailure, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: send: %v", domain.ErrEmailFailure, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: send status %d", domain.ErrEmailFailure, resp.StatusCode)
	}
	return nil
}
