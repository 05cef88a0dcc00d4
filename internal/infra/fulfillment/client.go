package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"social-growth-backend/internal/domain"
	"social-growth-backend/internal/domain/ports/adapter"
)

// Failure reasons for a dispatch attempt. The handler branches on these
// to keep provider problems distinguishable in logs and metrics.
type FailureReason string

const (
	ReasonNetwork  FailureReason = "network"
	ReasonStatus   FailureReason = "status"
	ReasonResponse FailureReason = "response"
	ReasonRejected FailureReason = "rejected"
)

// DispatchError is a structured dispatch failure. It unwraps to
// domain.ErrProviderFailure so callers can treat all variants uniformly
// when they only care that dispatch failed.
type DispatchError struct {
	Reason FailureReason
	Detail string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("fulfillment dispatch failed (%s): %s", e.Reason, e.Detail)
}

func (e *DispatchError) Unwrap() error { return domain.ErrProviderFailure }

func (e *DispatchError) DispatchReason() string { return string(e.Reason) }

var _ adapter.FulfillmentClient = (*Client)(nil)

// Client submits orders to the upstream SMM provider.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type providerResponse struct {
	Order json.Number `json:"order"`
	Error string      `json:"error"`
}

// SubmitOrder posts an add-order request and returns the provider's
// external order id.
func (c *Client) SubmitOrder(ctx context.Context, serviceCode, link string, quantity int) (string, error) {
	form := url.Values{}
	form.Set("key", c.apiKey)
	form.Set("action", "add")
	form.Set("service", serviceCode)
	form.Set("link", link)
	form.Set("quantity", strconv.Itoa(quantity))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &DispatchError{Reason: ReasonNetwork, Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &DispatchError{Reason: ReasonNetwork, Detail: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &DispatchError{Reason: ReasonNetwork, Detail: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &DispatchError{Reason: ReasonStatus, Detail: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	var out providerResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &DispatchError{Reason: ReasonResponse, Detail: err.Error()}
	}
	if out.Error != "" {
		return "", &DispatchError{Reason: ReasonRejected, Detail: out.Error}
	}
	if out.Order.String() == "" {
		return "", &DispatchError{Reason: ReasonResponse, Detail: "no order id in response"}
	}
	return out.Order.String(), nil
}
