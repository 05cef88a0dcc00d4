package processor

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"social-growth-backend/internal/domain"
	"social-growth-backend/internal/domain/ports/adapter"
)

// signatureTolerance bounds how old a signed notification may be.
const signatureTolerance = 5 * time.Minute

var _ adapter.WebhookVerifier = (*WebhookVerifier)(nil)

// WebhookVerifier checks the processor's signature header
// (t=<timestamp>,v1=<hmac>) against the signing secret and decodes the
// event envelope.
type WebhookVerifier struct {
	secret string
	now    func() time.Time
}

func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: secret, now: time.Now}
}

type eventEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

type intentObject struct {
	ID             string `json:"id"`
	Amount         int64  `json:"amount"`
	AmountReceived int64  `json:"amount_received"`
}

func (v *WebhookVerifier) VerifyAndParse(payload []byte, signatureHeader string) (*adapter.WebhookEvent, error) {
	ts, signatures, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed signature header", domain.ErrUnauthorized)
	}

	sec, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed signature timestamp", domain.ErrUnauthorized)
	}
	age := v.now().Sub(time.Unix(sec, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return nil, fmt.Errorf("%w: signature timestamp outside tolerance", domain.ErrUnauthorized)
	}

	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	valid := false
	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("%w: webhook signature mismatch", domain.ErrUnauthorized)
	}

	var envelope eventEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil || envelope.ID == "" {
		return nil, fmt.Errorf("%w: unparseable webhook payload", domain.ErrValidation)
	}

	event := &adapter.WebhookEvent{ID: envelope.ID, Type: envelope.Type}
	if strings.HasPrefix(envelope.Type, "payment_intent.") {
		var intent intentObject
		if err := json.Unmarshal(envelope.Data.Object, &intent); err != nil || intent.ID == "" {
			return nil, fmt.Errorf("%w: unparseable payment intent object", domain.ErrValidation)
		}
		event.PaymentIntentID = intent.ID
		event.Amount = intent.AmountReceived
		if event.Amount <= 0 {
			event.Amount = intent.Amount
		}
	}
	return event, nil
}

func parseSignatureHeader(header string) (string, []string, error) {
	var ts string
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		piece := strings.TrimSpace(part)
		if piece == "" {
			continue
		}
		kv := strings.SplitN(piece, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.TrimSpace(kv[0]) {
		case "t":
			ts = strings.TrimSpace(kv[1])
		case "v1":
			signatures = append(signatures, strings.TrimSpace(kv[1]))
		}
	}
	if ts == "" || len(signatures) == 0 {
		return "", nil, fmt.Errorf("missing timestamp or signature")
	}
	return ts, signatures, nil
}
