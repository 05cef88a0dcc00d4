//go:build !integration

package processor

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"social-growth-backend/internal/domain"
)

const testSecret = "whsec_test"

func signedHeader(t *testing.T, secret string, ts time.Time, payload []byte) string {
	t.Helper()
	tsStr := fmt.Sprintf("%d", ts.Unix())
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(tsStr))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", tsStr, hex.EncodeToString(mac.Sum(nil)))
}

func newTestVerifier(now time.Time) *WebhookVerifier {
	v := NewWebhookVerifier(testSecret)
	v.now = func() time.Time { return now }
	return v
}

const intentPayload = `{
	"id": "evt_1",
	"type": "payment_intent.succeeded",
	"data": {"object": {"id": "pi_123", "amount": 2500, "amount_received": 2500}}
}`

func TestWebhookVerifier_ValidSignature(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	v := newTestVerifier(now)
	payload := []byte(intentPayload)

	event, err := v.VerifyAndParse(payload, signedHeader(t, testSecret, now, payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Type != "payment_intent.succeeded" {
		t.Errorf("Type = %q", event.Type)
	}
	if event.PaymentIntentID != "pi_123" {
		t.Errorf("PaymentIntentID = %q, want pi_123", event.PaymentIntentID)
	}
	if event.Amount != 2500 {
		t.Errorf("Amount = %d, want 2500", event.Amount)
	}
}

func TestWebhookVerifier_WrongSecret(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	v := newTestVerifier(now)
	payload := []byte(intentPayload)

	_, err := v.VerifyAndParse(payload, signedHeader(t, "whsec_other", now, payload))
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestWebhookVerifier_TamperedPayload(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	v := newTestVerifier(now)
	payload := []byte(intentPayload)
	header := signedHeader(t, testSecret, now, payload)

	tampered := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_999","amount":1}}}`)
	if _, err := v.VerifyAndParse(tampered, header); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestWebhookVerifier_StaleTimestamp(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	v := newTestVerifier(now)
	payload := []byte(intentPayload)

	header := signedHeader(t, testSecret, now.Add(-6*time.Minute), payload)
	if _, err := v.VerifyAndParse(payload, header); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestWebhookVerifier_MalformedHeader(t *testing.T) {
	v := newTestVerifier(time.Now())
	for _, header := range []string{"", "t=123", "v1=abc", "garbage"} {
		if _, err := v.VerifyAndParse([]byte(intentPayload), header); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("header %q: err = %v, want ErrUnauthorized", header, err)
		}
	}
}

func TestWebhookVerifier_NonIntentEvent(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	v := newTestVerifier(now)
	payload := []byte(`{"id":"evt_2","type":"charge.refunded","data":{"object":{}}}`)

	event, err := v.VerifyAndParse(payload, signedHeader(t, testSecret, now, payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.PaymentIntentID != "" {
		t.Errorf("PaymentIntentID = %q, want empty for non-intent events", event.PaymentIntentID)
	}
}

func TestWebhookVerifier_AmountFallsBackWhenNothingReceived(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	v := newTestVerifier(now)
	payload := []byte(`{"id":"evt_3","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","amount":900}}}`)

	event, err := v.VerifyAndParse(payload, signedHeader(t, testSecret, now, payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Amount != 900 {
		t.Errorf("Amount = %d, want fallback 900", event.Amount)
	}
}
