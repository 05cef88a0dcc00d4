package repository

import "context"

// UnsubscribeRepository accesses the append-only opt-out list.
type UnsubscribeRepository interface {
	Exists(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, email string) error
}
