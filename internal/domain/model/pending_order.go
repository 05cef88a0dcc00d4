package model

import "time"

// PendingOrder is a checkout attempt awaiting asynchronous payment
// confirmation. Success transitions false -> true exactly once, keyed by
// the payment-intent id carried in the confirmation event.
type PendingOrder struct {
	ID            int64     `json:"id,omitempty"`
	Name          string    `json:"name"`
	Username      string    `json:"username"`
	Locale        string    `json:"locale"`
	Email         string    `json:"email"`
	Platform      string    `json:"platform"`
	Quantity      int       `json:"quantity"`
	PaymentIntent string    `json:"payment_intent"`
	Success       bool      `json:"success"`
	UserID        string    `json:"user_id,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}
