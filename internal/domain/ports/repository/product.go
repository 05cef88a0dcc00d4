package repository

import "context"

// ProductRepository is the static platform x quantity -> price lookup.
type ProductRepository interface {
	// Price returns the configured price in minor currency units. A
	// configured price of 0 is the free-trial tier and is distinct from
	// domain.ErrPriceNotFound for unconfigured pairs.
	Price(ctx context.Context, platform string, quantity int) (int64, error)
}
