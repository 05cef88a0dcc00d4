// File: internal/usecase/checkout_uc.go
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"social-growth-backend/internal/config"
	"social-growth-backend/internal/domain"
	"social-growth-backend/internal/domain/model"
	"social-growth-backend/internal/domain/ports/adapter"
	"social-growth-backend/internal/domain/ports/repository"
	"social-growth-backend/internal/infra/metrics"
)

// Compile-time check
var _ CheckoutUseCase = (*checkoutUC)(nil)

// CheckoutParams is one submitted checkout form.
type CheckoutParams struct {
	Name            string
	Email           string
	Username        string
	Locale          string
	Platform        string
	Action          string
	Quantity        int
	PaymentMethodID string
}

// CheckoutResult reports the path the checkout took. OrderID is set for
// the synchronous free tier; ClientSecret for paid tiers awaiting
// client-side confirmation of the payment intent.
type CheckoutResult struct {
	OrderID        string
	ClientSecret   string
	SubscriptionID string
	Free           bool
}

type CheckoutUseCase interface {
	Checkout(ctx context.Context, params CheckoutParams) (*CheckoutResult, error)
}

type checkoutUC struct {
	products     repository.ProductRepository
	usedCards    repository.UsedCardRepository
	orders       repository.OrderRepository
	pending      repository.PendingOrderRepository
	processor    adapter.PaymentProcessor
	fulfillment  adapter.FulfillmentClient
	accounts     AccountUseCase
	cfg          config.CheckoutConfig
	trialPriceID string
	currency     string
	returnURL    string
	now          func() time.Time
	log          *zerolog.Logger
}

func NewCheckoutUseCase(
	products repository.ProductRepository,
	usedCards repository.UsedCardRepository,
	orders repository.OrderRepository,
	pending repository.PendingOrderRepository,
	processor adapter.PaymentProcessor,
	fulfillment adapter.FulfillmentClient,
	accounts AccountUseCase,
	checkout config.CheckoutConfig,
	proc config.ProcessorConfig,
	logger *zerolog.Logger,
) *checkoutUC {
	return &checkoutUC{
		products:     products,
		usedCards:    usedCards,
		orders:       orders,
		pending:      pending,
		processor:    processor,
		fulfillment:  fulfillment,
		accounts:     accounts,
		cfg:          checkout,
		trialPriceID: proc.TrialPriceID,
		currency:     proc.Currency,
		returnURL:    proc.ReturnURL,
		now:          time.Now,
		log:          logger,
	}
}

func (p CheckoutParams) validate() error {
	if p.Email == "" || p.Username == "" || p.PaymentMethodID == "" {
		return domain.ErrValidation
	}
	if p.Quantity <= 0 {
		return domain.ErrValidation
	}
	if _, ok := model.ServiceCode(p.Platform, p.Action); !ok {
		return domain.ErrValidation
	}
	return nil
}

// Checkout runs the full purchase pipeline: price lookup, card-trial
// eligibility, charge, and either synchronous fulfillment (free tier) or
// a pending order that the payment webhook later promotes.
func (u *checkoutUC) Checkout(ctx context.Context, params CheckoutParams) (*CheckoutResult, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))
	params.Platform = strings.ToLower(params.Platform)
	params.Action = strings.ToLower(params.Action)

	price, err := u.products.Price(ctx, params.Platform, params.Quantity)
	if err != nil {
		return nil, err
	}

	pm, err := u.processor.RetrievePaymentMethod(ctx, params.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	used := false
	card, err := u.usedCards.FindByFingerprint(ctx, pm.Fingerprint)
	switch {
	case err == nil:
		used = domain.CardUsed(card.UpdatedAt, now, u.cfg.TrialWindow())
	case err == domain.ErrNotFound:
		// never seen: eligible
	default:
		return nil, err
	}

	plan := domain.DecideCheckout(used, price, u.cfg.ValidationAmount)
	if plan.Reject {
		metrics.IncTrialRejection()
		return nil, domain.ErrTrialAlreadyUsed
	}

	customerID, err := u.processor.CreateCustomer(ctx, params.Name, params.Email, params.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	// Reference ties the processor-side objects back to this attempt in
	// logs and the processor dashboard.
	reference := ulid.Make().String()
	u.log.Info().Str("reference", reference).Str("platform", params.Platform).Int64("amount", plan.ChargeAmount).Msg("charging checkout")

	intent, err := u.processor.CreatePaymentIntent(ctx, adapter.CreateIntentParams{
		Amount:          plan.ChargeAmount,
		Currency:        u.currency,
		CustomerID:      customerID,
		PaymentMethodID: params.PaymentMethodID,
		Confirm:         true,
		ReturnURL:       u.returnURL,
		Metadata: map[string]string{
			"reference": reference,
			"platform":  params.Platform,
			"username":  params.Username,
		},
	})
	if err != nil {
		// Charge did not confirm: the fingerprint stays unregistered so
		// the customer can retry without burning eligibility.
		metrics.IncPayment("failed")
		return nil, err
	}
	metrics.IncPayment("succeeded")
	metrics.AddPaymentRevenue(u.currency, plan.ChargeAmount)

	if plan.RegisterCard {
		if err := u.usedCards.Register(ctx, pm.Fingerprint, now); err != nil {
			return nil, err
		}
	}

	if plan.RefundAfterCharge {
		if err := u.processor.CreateRefund(ctx, intent.ID); err != nil {
			return nil, err
		}
		metrics.IncRefund()
	}

	result := &CheckoutResult{ClientSecret: intent.ClientSecret, Free: price == 0}

	if plan.CreateSubscription {
		subID, err := u.processor.CreateSubscription(ctx, customerID, u.trialPriceID, params.PaymentMethodID, u.cfg.TrialDays)
		if err != nil {
			return nil, err
		}
		result.SubscriptionID = subID
	}

	if price == 0 {
		// Free tier settles synchronously: account, dispatch, record.
		clientID, err := u.accounts.CreateOrRefresh(ctx, params.Name, params.Email, params.Locale)
		if err != nil {
			return nil, err
		}
		orderID, err := u.dispatch(ctx, clientID, params)
		if err != nil {
			return nil, err
		}
		result.OrderID = orderID
		return result, nil
	}

	// Paid tier waits for the processor's asynchronous confirmation.
	if err := u.pending.Insert(ctx, &model.PendingOrder{
		Name:          params.Name,
		Username:      params.Username,
		Locale:        params.Locale,
		Email:         params.Email,
		Platform:      params.Platform,
		Quantity:      params.Quantity,
		PaymentIntent: intent.ID,
	}); err != nil {
		return nil, err
	}
	return result, nil
}

func (u *checkoutUC) dispatch(ctx context.Context, clientID int64, params CheckoutParams) (string, error) {
	code, ok := model.ServiceCode(params.Platform, params.Action)
	if !ok {
		return "", fmt.Errorf("%w: unknown service %s/%s", domain.ErrValidation, params.Platform, params.Action)
	}
	link := model.ProfileLink(params.Platform, params.Username)

	externalID, err := u.fulfillment.SubmitOrder(ctx, code, link, params.Quantity)
	if err != nil {
		metrics.IncDispatchFailure(adapter.DispatchReason(err))
		return "", err
	}
	metrics.IncOrderDispatched(params.Platform)

	if err := u.orders.Insert(ctx, &model.Order{
		ClientID:   clientID,
		ExternalID: externalID,
		Platform:   params.Platform,
		Action:     params.Action,
		Quantity:   params.Quantity,
		URL:        link,
	}); err != nil {
		return "", err
	}
	return externalID, nil
}
