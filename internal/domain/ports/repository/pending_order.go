package repository

import (
	"context"

	"social-growth-backend/internal/domain/model"
)

// PendingOrderRepository accesses checkout attempts awaiting payment
// confirmation.
type PendingOrderRepository interface {
	Insert(ctx context.Context, p *model.PendingOrder) error
	// MarkPaid transitions the pending order matching the payment-intent
	// id from success=false to success=true and returns it. When no
	// unpaid row matches (unknown intent, or a repeat delivery of the
	// same confirmation) it returns domain.ErrNotFound; callers treat
	// that as a no-op, which is what makes the webhook idempotent.
	MarkPaid(ctx context.Context, paymentIntentID string) (*model.PendingOrder, error)
}
