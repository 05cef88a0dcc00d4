package model

import "time"

// Order is a fulfilled request. ExternalID is the identifier returned by
// the upstream fulfillment provider; a row exists only after dispatch
// succeeded and is immutable once created.
type Order struct {
	ID         int64     `json:"id,omitempty"`
	ClientID   int64     `json:"client_id"`
	ExternalID string    `json:"order_id"`
	Platform   string    `json:"social"`
	Action     string    `json:"service"`
	Quantity   int       `json:"quantity"`
	URL        string    `json:"url"`
	UserID     string    `json:"user_id,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}
