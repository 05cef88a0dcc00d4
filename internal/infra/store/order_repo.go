package store

import (
	"context"
	"strconv"
	"strings"

	"social-growth-backend/internal/domain/model"
	"social-growth-backend/internal/domain/ports/repository"
)

const tableOrders = "Orders"

var _ repository.OrderRepository = (*orderRepo)(nil)

type orderRepo struct{ client *Client }

func NewOrderRepo(client *Client) *orderRepo {
	return &orderRepo{client: client}
}

func (r *orderRepo) Insert(ctx context.Context, o *model.Order) error {
	userID, err := r.client.Session().UserID(ctx)
	if err != nil {
		return err
	}
	payload := map[string]any{
		"client_id": o.ClientID,
		"order_id":  o.ExternalID,
		"social":    o.Platform,
		"service":   o.Action,
		"quantity":  o.Quantity,
		"url":       strings.TrimSpace(o.URL),
		"user_id":   userID,
	}
	return r.client.Insert(ctx, tableOrders, payload, nil)
}

func (r *orderRepo) ListByClient(ctx context.Context, clientID int64) ([]*model.Order, error) {
	var rows []model.Order
	err := r.client.Select(ctx, tableOrders, "id,client_id,order_id,social,service,quantity,url,created_at",
		map[string]string{"client_id": strconv.FormatInt(clientID, 10)}, 0, &rows)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Order, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, nil
}
