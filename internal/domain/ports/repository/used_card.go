package repository

import (
	"context"
	"time"

	"social-growth-backend/internal/domain/model"
)

// UsedCardRepository accesses the card fingerprint registry.
type UsedCardRepository interface {
	// FindByFingerprint returns domain.ErrNotFound for a fingerprint
	// that was never registered.
	FindByFingerprint(ctx context.Context, fingerprint string) (*model.UsedCard, error)
	// Register idempotently records a use at now: an existing row gets
	// its updated_at bumped (re-arming the trial window), a missing row
	// is inserted with created_at = updated_at = now.
	Register(ctx context.Context, fingerprint string, now time.Time) error
}
