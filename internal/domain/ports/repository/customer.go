package repository

import (
	"context"

	"social-growth-backend/internal/domain/model"
)

// CustomerRepository accesses the customers collection.
type CustomerRepository interface {
	// FindByEmail returns domain.ErrNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)
	// Insert returns the id assigned by the store.
	Insert(ctx context.Context, c *model.Customer) (int64, error)
	UpdatePassword(ctx context.Context, id int64, password string) error
	FindByID(ctx context.Context, id int64) (*model.Customer, error)
}
