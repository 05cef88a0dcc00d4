// File: internal/usecase/order_uc.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"social-growth-backend/internal/config"
	"social-growth-backend/internal/domain"
	"social-growth-backend/internal/domain/model"
	"social-growth-backend/internal/domain/ports/adapter"
	"social-growth-backend/internal/domain/ports/repository"
	"social-growth-backend/internal/infra/metrics"
)

// Compile-time check
var _ OrderUseCase = (*orderUC)(nil)

type OrderUseCase interface {
	// Dashboard lists the customer's fulfilled orders.
	Dashboard(ctx context.Context, clientID int64) ([]*model.Order, error)
	// Reorder repeats the customer's standing order configuration after
	// the cooldown and count guards pass. It returns the newly created
	// order, or ErrNoOrders / ErrOrderLimitReached / ErrCooldownActive.
	Reorder(ctx context.Context, clientID int64) (*model.Order, error)
}

type orderUC struct {
	orders      repository.OrderRepository
	fulfillment adapter.FulfillmentClient
	cfg         config.CheckoutConfig
	now         func() time.Time
	log         *zerolog.Logger
}

func NewOrderUseCase(
	orders repository.OrderRepository,
	fulfillment adapter.FulfillmentClient,
	checkout config.CheckoutConfig,
	logger *zerolog.Logger,
) *orderUC {
	return &orderUC{
		orders:      orders,
		fulfillment: fulfillment,
		cfg:         checkout,
		now:         time.Now,
		log:         logger,
	}
}

func (u *orderUC) Dashboard(ctx context.Context, clientID int64) ([]*model.Order, error) {
	return u.orders.ListByClient(ctx, clientID)
}

func (u *orderUC) Reorder(ctx context.Context, clientID int64) (*model.Order, error) {
	existing, err := u.orders.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	tmpl, err := domain.DecideReorder(existing, u.now(), u.cfg.Cooldown(), u.cfg.MaxOrders)
	if err != nil {
		return nil, err
	}

	code, ok := model.ServiceCode(tmpl.Platform, tmpl.Action)
	if !ok {
		return nil, fmt.Errorf("%w: unknown service %s/%s", domain.ErrValidation, tmpl.Platform, tmpl.Action)
	}

	externalID, err := u.fulfillment.SubmitOrder(ctx, code, tmpl.URL, u.cfg.DefaultQuantity)
	if err != nil {
		metrics.IncDispatchFailure(adapter.DispatchReason(err))
		return nil, err
	}
	metrics.IncOrderDispatched(tmpl.Platform)

	order := &model.Order{
		ClientID:   clientID,
		ExternalID: externalID,
		Platform:   tmpl.Platform,
		Action:     tmpl.Action,
		Quantity:   u.cfg.DefaultQuantity,
		URL:        tmpl.URL,
	}
	if err := u.orders.Insert(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
