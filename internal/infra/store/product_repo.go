package store

import (
	"context"
	"strconv"

	"social-growth-backend/internal/domain"
	"social-growth-backend/internal/domain/model"
	"social-growth-backend/internal/domain/ports/repository"
)

const tableProducts = "Products"

var _ repository.ProductRepository = (*productRepo)(nil)

type productRepo struct{ client *Client }

func NewProductRepo(client *Client) *productRepo {
	return &productRepo{client: client}
}

// Price is an exact-match lookup. Not-found is distinct from a
// configured price of 0 (the free-trial tier).
func (r *productRepo) Price(ctx context.Context, platform string, quantity int) (int64, error) {
	var rows []model.Product
	err := r.client.Select(ctx, tableProducts, "price", map[string]string{
		"plataform": platform,
		"quantity":  strconv.Itoa(quantity),
	}, 1, &rows)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, domain.ErrPriceNotFound
	}
	return rows[0].Price, nil
}
