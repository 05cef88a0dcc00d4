package store

import (
	"context"

	"social-growth-backend/internal/domain/model"
	"social-growth-backend/internal/domain/ports/repository"
)

const tableUnsubscribes = "Unsuscribe"

var _ repository.UnsubscribeRepository = (*unsubscribeRepo)(nil)

type unsubscribeRepo struct{ client *Client }

func NewUnsubscribeRepo(client *Client) *unsubscribeRepo {
	return &unsubscribeRepo{client: client}
}

func (r *unsubscribeRepo) Exists(ctx context.Context, email string) (bool, error) {
	var rows []model.Unsubscribe
	err := r.client.Select(ctx, tableUnsubscribes, "id", map[string]string{"email": email}, 1, &rows)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

func (r *unsubscribeRepo) Insert(ctx context.Context, email string) error {
	userID, err := r.client.Session().UserID(ctx)
	if err != nil {
		return err
	}
	payload := map[string]string{
		"email":   email,
		"user_id": userID,
	}
	return r.client.Insert(ctx, tableUnsubscribes, payload, nil)
}
