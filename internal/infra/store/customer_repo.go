package store

import (
	"context"
	"strconv"
	"time"

	"social-growth-backend/internal/domain"
	"social-growth-backend/internal/domain/model"
	"social-growth-backend/internal/domain/ports/repository"
)

// Table names match the hosted store's schema.
const (
	tableCustomers = "Client"
)

var _ repository.CustomerRepository = (*customerRepo)(nil)

type customerRepo struct{ client *Client }

func NewCustomerRepo(client *Client) *customerRepo {
	return &customerRepo{client: client}
}

func (r *customerRepo) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var rows []model.Customer
	err := r.client.Select(ctx, tableCustomers, "id,name,email,password", map[string]string{"email": email}, 1, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return &rows[0], nil
}

func (r *customerRepo) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	var rows []model.Customer
	err := r.client.Select(ctx, tableCustomers, "id,name,email,password", map[string]string{"id": strconv.FormatInt(id, 10)}, 1, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return &rows[0], nil
}

func (r *customerRepo) Insert(ctx context.Context, c *model.Customer) (int64, error) {
	userID, err := r.client.Session().UserID(ctx)
	if err != nil {
		return 0, err
	}
	payload := map[string]string{
		"name":     c.Name,
		"email":    c.Email,
		"password": c.Password,
		"user_id":  userID,
	}
	var rows []model.Customer
	if err := r.client.Insert(ctx, tableCustomers, payload, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, domain.ErrStoreFailure
	}
	return rows[0].ID, nil
}

func (r *customerRepo) UpdatePassword(ctx context.Context, id int64, password string) error {
	payload := map[string]string{
		"password":   password,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	var rows []model.Customer
	if err := r.client.Update(ctx, tableCustomers, map[string]string{"id": strconv.FormatInt(id, 10)}, payload, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return domain.ErrNotFound
	}
	return nil
}
