package domain

import (
	"time"

	"social-growth-backend/internal/domain/model"
)

// DecideReorder applies the dashboard reorder guards to a customer's
// existing orders and, when allowed, picks the order whose configuration
// (platform, action, target URL) the new order reuses.
//
// Guards, in order:
//   - no existing orders: this flow only repeats an existing
//     configuration, so ErrNoOrders
//   - maxOrders or more standing orders: ErrOrderLimitReached
//   - the most recent order is cooldown old or younger: ErrCooldownActive
//     (exactly cooldown elapsed is still too soon; only strictly more
//     qualifies)
func DecideReorder(orders []*model.Order, now time.Time, cooldown time.Duration, maxOrders int) (*model.Order, error) {
	if len(orders) == 0 {
		return nil, ErrNoOrders
	}
	if len(orders) >= maxOrders {
		return nil, ErrOrderLimitReached
	}
	newest := orders[0].CreatedAt
	for _, o := range orders[1:] {
		if o.CreatedAt.After(newest) {
			newest = o.CreatedAt
		}
	}
	if now.Sub(newest) <= cooldown {
		return nil, ErrCooldownActive
	}
	return orders[0], nil
}
