package payments

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v82/webhook"
)

const (
	EventCheckoutCompleted = "checkout.session.completed"
	SignatureHeader        = "Stripe-Signature"

	DefaultWebhookTolerance = 5 * time.Minute
)

var (
	ErrNoSignature      = webhook.ErrNotSigned
	ErrTimestampTooOld  = webhook.ErrTooOld
	ErrInvalidSignature = webhook.ErrNoValidSignature
)

type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// CheckoutSession decodes the event's object as a checkout session.
func (e *Event) CheckoutSession() (*CheckoutSession, error) {
	var session CheckoutSession
	if err := json.Unmarshal(e.Data.Object, &session); err != nil {
		return nil, errors.Wrap(err, "decode checkout session")
	}
	return &session, nil
}

// WebhookVerifier checks the Stripe-Signature header of incoming events.
type WebhookVerifier struct {
	Secret    string
	Tolerance time.Duration
}

func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{Secret: secret, Tolerance: DefaultWebhookTolerance}
}

// ConstructEvent verifies header against payload and decodes the event.
// The event's api_version is not checked; only the fields above are read.
func (v *WebhookVerifier) ConstructEvent(payload []byte, header string) (*Event, error) {
	if v.Secret == "" {
		return nil, errors.New("webhook secret is not configured")
	}
	if err := webhook.ValidatePayloadWithTolerance(payload, header, v.Secret, v.Tolerance); err != nil {
		return nil, err
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, errors.Wrap(err, "decode webhook event")
	}
	return &event, nil
}
