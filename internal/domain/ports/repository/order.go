package repository

import (
	"context"

	"social-growth-backend/internal/domain/model"
)

// OrderRepository accesses the fulfilled orders collection. Rows are
// immutable once inserted.
type OrderRepository interface {
	Insert(ctx context.Context, o *model.Order) error
	// ListByClient returns the customer's orders in insertion order.
	ListByClient(ctx context.Context, clientID int64) ([]*model.Order, error)
}
