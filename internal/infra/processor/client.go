package processor

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

const defaultBaseURL = "https://api.stripe.com"

var _ adapter.PaymentProcessor = (*Client)(nil)

// Client implements the payment processor port over its form-encoded
// HTTP API.
type Client struct {
	secretKey string
	baseURL   string
	http      *http.Client
}

func NewClient(secretKey string) *Client {
	return &Client{
		secretKey: secretKey,
		baseURL:   defaultBaseURL,
		http:      &http.Client{Timeout: 20 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point at a stub server.
func NewClientWithBaseURL(secretKey, baseURL string) *Client {
	c := NewClient(secretKey)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type paymentMethodResponse struct {
	ID   string `json:"id"`
	Card struct {
		Fingerprint string `json:"fingerprint"`
	} `json:"card"`
}

type customerResponse struct {
	ID string `json:"id"`
}

type paymentIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
}

type subscriptionResponse struct {
	ID string `json:"id"`
}

func (c *Client) RetrievePaymentMethod(ctx context.Context, id string) (*adapter.PaymentMethod, error) {
	var out paymentMethodResponse
	if err := c.call(ctx, http.MethodGet, "/v1/payment_methods/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	if out.Card.Fingerprint == "" {
		return nil, fmt.Errorf("%w: payment method %s has no card fingerprint", domain.ErrProcessorFailure, id)
	}
	return &adapter.PaymentMethod{ID: out.ID, Fingerprint: out.Card.Fingerprint}, nil
}

func (c *Client) CreateCustomer(ctx context.Context, name, email, paymentMethodID string) (string, error) {
	form := url.Values{}
	form.Set("name", name)
	form.Set("email", email)
	form.Set("payment_method", paymentMethodID)
	form.Set("invoice_settings[default_payment_method]", paymentMethodID)

	var out customerResponse
	if err := c.call(ctx, http.MethodPost, "/v1/customers", form, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) CreatePaymentIntent(ctx context.Context, params adapter.CreateIntentParams) (*adapter.PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(params.Amount, 10))
	form.Set("currency", params.Currency)
	form.Set("customer", params.CustomerID)
	form.Set("payment_method", params.PaymentMethodID)
	if params.Confirm {
		form.Set("confirm", "true")
	}
	if params.ReturnURL != "" {
		form.Set("return_url", params.ReturnURL)
	}
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var out paymentIntentResponse
	if err := c.call(ctx, http.MethodPost, "/v1/payment_intents", form, &out); err != nil {
		return nil, err
	}
	return &adapter.PaymentIntent{
		ID:           out.ID,
		ClientSecret: out.ClientSecret,
		Status:       out.Status,
		Amount:       out.Amount,
	}, nil
}

func (c *Client) CreateRefund(ctx context.Context, paymentIntentID string) error {
	form := url.Values{}
	form.Set("payment_intent", paymentIntentID)
	return c.call(ctx, http.MethodPost, "/v1/refunds", form, &struct{}{})
}

func (c *Client) CreateSubscription(ctx context.Context, customerID, priceID, paymentMethodID string, trialDays int) (string, error) {
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("items[0][price]", priceID)
	form.Set("trial_period_days", strconv.Itoa(trialDays))
	form.Set("default_payment_method", paymentMethodID)

	var out subscriptionResponse
	if err := c.call(ctx, http.MethodPost, "/v1/subscriptions", form, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) call(ctx context.Context, method, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrProcessorFailure, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrProcessorFailure, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrProcessorFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("%w: %s (%s)", domain.ErrProcessorFailure, apiErr.Error.Message, apiErr.Error.Type)
		}
		return fmt.Errorf("%w: %s %s status %d", domain.ErrProcessorFailure, method, path, resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrProcessorFailure, err)
	}
	return nil
}
