package adapter

import "context"

// PaymentMethod is the processor's view of a submitted card. Fingerprint
// is the opaque identity token stable across transactions.
type PaymentMethod struct {
	ID          string
	Fingerprint string
}

// PaymentIntent is a created (and, when Confirm was set, confirmed)
// charge attempt.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64
}

// CreateIntentParams carries everything needed to charge a customer.
type CreateIntentParams struct {
	Amount          int64
	Currency        string
	CustomerID      string
	PaymentMethodID string
	Confirm         bool
	ReturnURL       string
	Metadata        map[string]string
}

// PaymentProcessor is the third-party processor treated as a black box.
type PaymentProcessor interface {
	RetrievePaymentMethod(ctx context.Context, id string) (*PaymentMethod, error)
	CreateCustomer(ctx context.Context, name, email, paymentMethodID string) (string, error)
	CreatePaymentIntent(ctx context.Context, params CreateIntentParams) (*PaymentIntent, error)
	CreateRefund(ctx context.Context, paymentIntentID string) error
	// CreateSubscription opens a subscription with a trial period; the
	// backing price plan is configured at the processor.
	CreateSubscription(ctx context.Context, customerID, priceID, paymentMethodID string, trialDays int) (string, error)
}

// WebhookEvent is a verified, parsed processor notification.
type WebhookEvent struct {
	ID              string
	Type            string
	PaymentIntentID string
	Amount          int64
}

// WebhookVerifier checks an inbound payload against the signing secret
// and decodes it into a typed event.
type WebhookVerifier interface {
	VerifyAndParse(payload []byte, signatureHeader string) (*WebhookEvent, error)
}
