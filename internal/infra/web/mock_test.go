// File: internal/infra/web/mock_test.go
package web

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"social-growth-backend/internal/config"
	"social-growth-backend/internal/domain/model"
	"social-growth-backend/internal/domain/ports/adapter"
	"social-growth-backend/internal/infra/i18n"
	"social-growth-backend/internal/usecase"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

type stubAccounts struct {
	loginCustomer *model.Customer
	loginErr      error
	recoverErr    error
	unsubErr      error
	unsubscribed  []string
}

func (s *stubAccounts) CreateOrRefresh(ctx context.Context, name, email, locale string) (int64, error) {
	return 1, nil
}

func (s *stubAccounts) Login(ctx context.Context, email, password string) (*model.Customer, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginCustomer, nil
}

func (s *stubAccounts) RecoverPassword(ctx context.Context, email, locale string) error {
	return s.recoverErr
}

func (s *stubAccounts) Unsubscribe(ctx context.Context, email string) error {
	if s.unsubErr != nil {
		return s.unsubErr
	}
	s.unsubscribed = append(s.unsubscribed, email)
	return nil
}

type stubOrders struct {
	orders     []*model.Order
	listErr    error
	reorder    *model.Order
	reorderErr error
	reorderFor []int64
}

func (s *stubOrders) Dashboard(ctx context.Context, clientID int64) ([]*model.Order, error) {
	return s.orders, s.listErr
}

func (s *stubOrders) Reorder(ctx context.Context, clientID int64) (*model.Order, error) {
	s.reorderFor = append(s.reorderFor, clientID)
	if s.reorderErr != nil {
		return nil, s.reorderErr
	}
	return s.reorder, nil
}

type stubCheckout struct {
	result *usecase.CheckoutResult
	err    error
	params []usecase.CheckoutParams
}

func (s *stubCheckout) Checkout(ctx context.Context, params usecase.CheckoutParams) (*usecase.CheckoutResult, error) {
	s.params = append(s.params, params)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubWebhook struct {
	outcome string
	err     error
	events  []*adapter.WebhookEvent
}

func (s *stubWebhook) HandleEvent(ctx context.Context, event *adapter.WebhookEvent) (string, error) {
	s.events = append(s.events, event)
	return s.outcome, s.err
}

type stubContact struct {
	err    error
	relays int
}

func (s *stubContact) Relay(ctx context.Context, name, email, message string) error {
	if s.err == nil {
		s.relays++
	}
	return s.err
}

type stubVerifier struct {
	event *adapter.WebhookEvent
	err   error
}

func (s *stubVerifier) VerifyAndParse(payload []byte, signatureHeader string) (*adapter.WebhookEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.event, nil
}

type serverDeps struct {
	accounts *stubAccounts
	orders   *stubOrders
	checkout *stubCheckout
	webhook  *stubWebhook
	contact  *stubContact
	verifier *stubVerifier
	auth     *AuthManager
}

func newServerDeps() *serverDeps {
	return &serverDeps{
		accounts: &stubAccounts{},
		orders:   &stubOrders{},
		checkout: &stubCheckout{},
		webhook:  &stubWebhook{},
		contact:  &stubContact{},
		verifier: &stubVerifier{},
		auth:     NewAuthManager("test-secret", 2*time.Hour, 10*time.Minute),
	}
}

func (d *serverDeps) newServer(t *testing.T) *Server {
	t.Helper()
	catalog, err := i18n.NewCatalog(i18n.LocalesFS)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return NewServer(
		d.accounts, d.orders, d.checkout, d.webhook, d.contact,
		d.auth, d.verifier, catalog, nil,
		config.ServerConfig{}, "test-api-key", newTestLogger(),
	)
}
