// File: internal/usecase/webhook_uc.go
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
var _ WebhookUseCase = (*webhookUC)(nil)

// Webhook outcomes, also used as metric labels.
const (
	OutcomeIgnored   = "ignored"
	OutcomeDuplicate = "duplicate"
	OutcomePromoted  = "promoted"
)

const eventPaymentSucceeded = "payment_intent.succeeded"

type WebhookUseCase interface {
	// HandleEvent promotes the pending order matched by a successful
	// payment confirmation: account provisioning, the below-threshold
	// courtesy refund, upstream dispatch, and the fulfilled-order row.
	// Repeat deliveries of the same confirmation are no-ops.
	HandleEvent(ctx context.Context, event *adapter.WebhookEvent) (string, error)
}

type webhookUC struct {
	pending     repository.PendingOrderRepository
	orders      repository.OrderRepository
	processor   adapter.PaymentProcessor
	fulfillment adapter.FulfillmentClient
	accounts    AccountUseCase
	cfg         config.CheckoutConfig
	now         func() time.Time
	log         *zerolog.Logger
}

func NewWebhookUseCase(
	pending repository.PendingOrderRepository,
	orders repository.OrderRepository,
	processor adapter.PaymentProcessor,
	fulfillment adapter.FulfillmentClient,
	accounts AccountUseCase,
	checkout config.CheckoutConfig,
	logger *zerolog.Logger,
) *webhookUC {
	return &webhookUC{
		pending:     pending,
		orders:      orders,
		processor:   processor,
		fulfillment: fulfillment,
		accounts:    accounts,
		cfg:         checkout,
		now:         time.Now,
		log:         logger,
	}
}

func (u *webhookUC) HandleEvent(ctx context.Context, event *adapter.WebhookEvent) (string, error) {
	if event.Type != eventPaymentSucceeded {
		metrics.IncWebhookEvent(OutcomeIgnored)
		return OutcomeIgnored, nil
	}

	pending, err := u.pending.MarkPaid(ctx, event.PaymentIntentID)
	if err == domain.ErrNotFound {
		// Unknown intent or a redelivery: the conditional update already
		// consumed the only unpaid row, so there is nothing to do.
		metrics.IncWebhookEvent(OutcomeDuplicate)
		return OutcomeDuplicate, nil
	}
	if err != nil {
		return "", err
	}

	clientID, err := u.accounts.CreateOrRefresh(ctx, pending.Name, pending.Email, pending.Locale)
	if err != nil {
		return "", err
	}

	if pending.Quantity < u.cfg.RefundThreshold {
		if err := u.processor.CreateRefund(ctx, event.PaymentIntentID); err != nil {
			// The refund is a courtesy; the order still ships.
			u.log.Error().Err(err).Str("payment_intent", event.PaymentIntentID).Msg("below-threshold refund failed")
		} else {
			metrics.IncRefund()
		}
	}

	code, ok := model.ServiceCode(pending.Platform, model.ActionFollowers)
	if !ok {
		return "", fmt.Errorf("%w: unknown platform %s", domain.ErrValidation, pending.Platform)
	}
	link := model.ProfileLink(pending.Platform, pending.Username)

	externalID, err := u.fulfillment.SubmitOrder(ctx, code, link, pending.Quantity)
	if err != nil {
		metrics.IncDispatchFailure(adapter.DispatchReason(err))
		return "", err
	}
	metrics.IncOrderDispatched(pending.Platform)

	if err := u.orders.Insert(ctx, &model.Order{
		ClientID:   clientID,
		ExternalID: externalID,
		Platform:   pending.Platform,
		Action:     model.ActionFollowers,
		Quantity:   pending.Quantity,
		URL:        link,
	}); err != nil {
		return "", err
	}

	metrics.IncWebhookEvent(OutcomePromoted)
	return OutcomePromoted, nil
}
