package store

import (
	"context"

	"social-growth-backend/internal/domain"
	"social-growth-backend/internal/domain/model"
	"social-growth-backend/internal/domain/ports/repository"
)

const tablePendingOrders = "Pending_orders"

var _ repository.PendingOrderRepository = (*pendingOrderRepo)(nil)

type pendingOrderRepo struct{ client *Client }

func NewPendingOrderRepo(client *Client) *pendingOrderRepo {
	return &pendingOrderRepo{client: client}
}

func (r *pendingOrderRepo) Insert(ctx context.Context, p *model.PendingOrder) error {
	userID, err := r.client.Session().UserID(ctx)
	if err != nil {
		return err
	}
	payload := map[string]any{
		"name":           p.Name,
		"username":       p.Username,
		"locale":         p.Locale,
		"email":          p.Email,
		"platform":       p.Platform,
		"quantity":       p.Quantity,
		"payment_intent": p.PaymentIntent,
		"user_id":        userID,
	}
	return r.client.Insert(ctx, tablePendingOrders, payload, nil)
}

// MarkPaid flips success=false -> true for the row carrying the intent
// id. The success=false filter makes the transition single-shot: a
// repeat confirmation matches zero rows and surfaces ErrNotFound.
func (r *pendingOrderRepo) MarkPaid(ctx context.Context, paymentIntentID string) (*model.PendingOrder, error) {
	filters := map[string]string{
		"payment_intent": paymentIntentID,
		"success":        "false",
	}
	var rows []model.PendingOrder
	if err := r.client.Update(ctx, tablePendingOrders, filters, map[string]bool{"success": true}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return &rows[0], nil
}
