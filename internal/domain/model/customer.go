package model

import "time"

// Customer is an end user created at checkout time. Email is stored
// lowercased and is unique per store; Password is generated server-side
// and re-generated (and re-emailed) on repeat signup.
type Customer struct {
	ID        int64     `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
