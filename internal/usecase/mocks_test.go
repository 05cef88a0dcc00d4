// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"social-growth-backend/internal/config"
	"social-growth-backend/internal/domain"
	"social-growth-backend/internal/domain/model"
	"social-growth-backend/internal/domain/ports/adapter"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func testCheckoutCfg() config.CheckoutConfig {
	return config.CheckoutConfig{
		TrialWindowDays:  30,
		TrialDays:        14,
		ValidationAmount: 100,
		RefundThreshold:  500,
		CooldownDays:     7,
		MaxOrders:        4,
		DefaultQuantity:  100,
	}
}

func testProcessorCfg() config.ProcessorConfig {
	return config.ProcessorConfig{
		TrialPriceID: "price_trial",
		Currency:     "eur",
		ReturnURL:    "https://example.com/return",
	}
}

func testCustomer(email, password string) *model.Customer {
	return &model.Customer{Name: "Test", Email: email, Password: password}
}

// ===== In-memory repositories =====

type memCustomerRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*model.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{nextID: 1, byID: make(map[int64]*model.Customer)}
}

func (m *memCustomerRepo) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byID {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memCustomerRepo) Insert(ctx context.Context, c *model.Customer) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	cp.ID = m.nextID
	m.nextID++
	m.byID[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memCustomerRepo) UpdatePassword(ctx context.Context, id int64, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Password = password
	return nil
}

func (m *memCustomerRepo) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders []*model.Order
	insErr error
}

func newMemOrderRepo() *memOrderRepo { return &memOrderRepo{} }

func (m *memOrderRepo) Insert(ctx context.Context, o *model.Order) error {
	if m.insErr != nil {
		return m.insErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *o
	m.orders = append(m.orders, &cp)
	return nil
}

func (m *memOrderRepo) ListByClient(ctx context.Context, clientID int64) ([]*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Order
	for _, o := range m.orders {
		if o.ClientID == clientID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memPendingRepo struct {
	mu      sync.Mutex
	pending []*model.PendingOrder
}

func newMemPendingRepo() *memPendingRepo { return &memPendingRepo{} }

func (m *memPendingRepo) Insert(ctx context.Context, p *model.PendingOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.pending = append(m.pending, &cp)
	return nil
}

func (m *memPendingRepo) MarkPaid(ctx context.Context, paymentIntentID string) (*model.PendingOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.pending {
		if p.PaymentIntent == paymentIntentID && !p.Success {
			p.Success = true
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

type memUsedCardRepo struct {
	mu    sync.Mutex
	cards map[string]*model.UsedCard
}

func newMemUsedCardRepo() *memUsedCardRepo {
	return &memUsedCardRepo{cards: make(map[string]*model.UsedCard)}
}

func (m *memUsedCardRepo) FindByFingerprint(ctx context.Context, fingerprint string) (*model.UsedCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[fingerprint]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memUsedCardRepo) Register(ctx context.Context, fingerprint string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.cards[fingerprint]; ok {
		c.UpdatedAt = now
		return nil
	}
	m.cards[fingerprint] = &model.UsedCard{Fingerprint: fingerprint, CreatedAt: now, UpdatedAt: now}
	return nil
}

type stubProductRepo struct {
	prices map[string]int64 // "platform/quantity"
}

func (s *stubProductRepo) Price(ctx context.Context, platform string, quantity int) (int64, error) {
	price, ok := s.prices[platform+"/"+strconv.Itoa(quantity)]
	if !ok {
		return 0, domain.ErrPriceNotFound
	}
	return price, nil
}

type memUnsubscribeRepo struct {
	mu     sync.Mutex
	emails map[string]bool
}

func newMemUnsubscribeRepo() *memUnsubscribeRepo {
	return &memUnsubscribeRepo{emails: make(map[string]bool)}
}

func (m *memUnsubscribeRepo) Exists(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.emails[email], nil
}

func (m *memUnsubscribeRepo) Insert(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emails[email] = true
	return nil
}

// ===== Adapter mocks =====

type mockProcessor struct {
	mu sync.Mutex

	fingerprint string
	methodErr   error

	intentErr     error
	intents       []adapter.CreateIntentParams
	refunds       []string
	refundErr     error
	subscriptions int
	subErr        error
	customers     int
}

func (m *mockProcessor) RetrievePaymentMethod(ctx context.Context, id string) (*adapter.PaymentMethod, error) {
	if m.methodErr != nil {
		return nil, m.methodErr
	}
	return &adapter.PaymentMethod{ID: id, Fingerprint: m.fingerprint}, nil
}

func (m *mockProcessor) CreateCustomer(ctx context.Context, name, email, paymentMethodID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers++
	return "cus_test", nil
}

func (m *mockProcessor) CreatePaymentIntent(ctx context.Context, params adapter.CreateIntentParams) (*adapter.PaymentIntent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.intentErr != nil {
		return nil, m.intentErr
	}
	m.intents = append(m.intents, params)
	return &adapter.PaymentIntent{
		ID:           "pi_test",
		ClientSecret: "pi_test_secret",
		Status:       "succeeded",
		Amount:       params.Amount,
	}, nil
}

func (m *mockProcessor) CreateRefund(ctx context.Context, paymentIntentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.refundErr != nil {
		return m.refundErr
	}
	m.refunds = append(m.refunds, paymentIntentID)
	return nil
}

func (m *mockProcessor) CreateSubscription(ctx context.Context, customerID, priceID, paymentMethodID string, trialDays int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subErr != nil {
		return "", m.subErr
	}
	m.subscriptions++
	return "sub_test", nil
}

type submittedOrder struct {
	serviceCode string
	link        string
	quantity    int
}

type mockFulfillment struct {
	mu        sync.Mutex
	submitted []submittedOrder
	err       error
}

func (m *mockFulfillment) SubmitOrder(ctx context.Context, serviceCode, link string, quantity int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.submitted = append(m.submitted, submittedOrder{serviceCode, link, quantity})
	return "ext-1001", nil
}

type sentCredentials struct {
	name, email, password, locale string
}

type mockMailer struct {
	mu          sync.Mutex
	credentials []sentCredentials
	contacts    []string
	err         error
}

func (m *mockMailer) SendCredentials(ctx context.Context, name, email, password, locale string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.credentials = append(m.credentials, sentCredentials{name, email, password, locale})
	return nil
}

func (m *mockMailer) SendContact(ctx context.Context, name, email, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.contacts = append(m.contacts, email)
	return nil
}
