package model

import "time"

// Unsubscribe is an append-only opt-out record. Presence means the email
// is no longer eligible for recovery or contact flows.
type Unsubscribe struct {
	ID        int64     `json:"id,omitempty"`
	Email     string    `json:"email"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
