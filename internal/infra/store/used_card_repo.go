package store

import (
	"context"
	"strconv"
	"time"

	"social-growth-backend/internal/domain"
	"social-growth-backend/internal/domain/model"
	"social-growth-backend/internal/domain/ports/repository"
)

const tableUsedCards = "Users_cards"

var _ repository.UsedCardRepository = (*usedCardRepo)(nil)

type usedCardRepo struct{ client *Client }

func NewUsedCardRepo(client *Client) *usedCardRepo {
	return &usedCardRepo{client: client}
}

func (r *usedCardRepo) FindByFingerprint(ctx context.Context, fingerprint string) (*model.UsedCard, error) {
	var rows []model.UsedCard
	err := r.client.Select(ctx, tableUsedCards, "id,fingerprint,created_at,updated_at",
		map[string]string{"fingerprint": fingerprint}, 1, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return &rows[0], nil
}

func (r *usedCardRepo) Register(ctx context.Context, fingerprint string, now time.Time) error {
	stamp := now.UTC().Format(time.RFC3339)

	existing, err := r.FindByFingerprint(ctx, fingerprint)
	switch {
	case err == nil:
		payload := map[string]string{"updated_at": stamp}
		return r.client.Update(ctx, tableUsedCards,
			map[string]string{"id": strconv.FormatInt(existing.ID, 10)}, payload, nil)
	case err == domain.ErrNotFound:
		userID, err := r.client.Session().UserID(ctx)
		if err != nil {
			return err
		}
		payload := map[string]string{
			"fingerprint": fingerprint,
			"created_at":  stamp,
			"updated_at":  stamp,
			"user_id":     userID,
		}
		return r.client.Insert(ctx, tableUsedCards, payload, nil)
	default:
		return err
	}
}
