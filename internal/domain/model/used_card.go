package model

import "time"

// UsedCard records that a card fingerprint consumed its free-trial
// allowance. UpdatedAt is the reference point for the trial window: a
// repeat use re-arms the block for another full window.
type UsedCard struct {
	ID          int64     `json:"id,omitempty"`
	Fingerprint string    `json:"fingerprint"`
	UserID      string    `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}
