package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	config "github.com/anjiri1684/course_market/configs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *StripeClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewStripeClient(&config.Config{
		StripeAPIBase:     srv.URL,
		StripeSecretKey:   "sk_test_123",
		StripeRedirectURL: "http://localhost:3000/stripe/callback",
		Currency:          "usd",
		HTTPClientTimeout: 5 * time.Second,
	})
}

func TestCreateCheckoutSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "2999", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "900", r.PostForm.Get("payment_intent_data[application_fee_amount]"))
		assert.Equal(t, "acct_1", r.PostForm.Get("payment_intent_data[transfer_data][destination]"))
		assert.Equal(t, "course-1", r.PostForm.Get("metadata[course_id]"))
		assert.Equal(t, "usd", r.PostForm.Get("line_items[0][price_data][currency]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_123","url":"https://checkout.stripe.com/cs_123","payment_status":"unpaid","amount_total":2999,"currency":"usd"}`))
	})

	session, err := client.CreateCheckoutSession(context.Background(), CheckoutParams{
		ProductName: "Go Basics",
		AmountCents: 2999,
		FeeCents:    900,
		Destination: "acct_1",
		SuccessURL:  "http://localhost:3000/stripe/success/course-1",
		CancelURL:   "http://localhost:3000/stripe/cancel",
		Metadata:    map[string]string{"course_id": "course-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_123", session.ID)
	assert.Equal(t, "unpaid", session.PaymentStatus)
	assert.Equal(t, int64(2999), session.AmountTotal)
}

func TestRetrieveSessionReportsStripeErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions/cs_missing", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"No such checkout.session"}}`))
	})

	_, err := client.RetrieveSession(context.Background(), "cs_missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No such checkout.session")
}

func TestAccountOnboarding(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/accounts":
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "express", r.PostForm.Get("type"))
			_, _ = w.Write([]byte(`{"id":"acct_9","charges_enabled":false}`))
		case "/v1/account_links":
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "acct_9", r.PostForm.Get("account"))
			assert.Equal(t, "account_onboarding", r.PostForm.Get("type"))
			_, _ = w.Write([]byte(`{"url":"https://connect.stripe.com/setup/acct_9"}`))
		case "/v1/accounts/acct_9":
			_, _ = w.Write([]byte(`{"id":"acct_9","charges_enabled":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	account, err := client.CreateAccount(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "acct_9", account.ID)
	assert.False(t, account.ChargesEnabled)

	link, err := client.CreateAccountLink(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://connect.stripe.com/setup/acct_9", link)

	account, err = client.RetrieveAccount(ctx, "acct_9")
	require.NoError(t, err)
	assert.True(t, account.ChargesEnabled)
	assert.JSONEq(t, `{"id":"acct_9","charges_enabled":true}`, string(account.Raw))
}

func signed(payload []byte, secret string, at time.Time) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: at,
		Scheme:    "v1",
	}).Header
}

func TestWebhookVerifier(t *testing.T) {
	now := time.Now()
	verifier := NewWebhookVerifier("whsec_test")
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1","payment_status":"paid","metadata":{"user_id":"u","course_id":"c"}}}}`)

	event, err := verifier.ConstructEvent(payload, signed(payload, "whsec_test", now))
	require.NoError(t, err)
	assert.Equal(t, EventCheckoutCompleted, event.Type)
	session, err := event.CheckoutSession()
	require.NoError(t, err)
	assert.Equal(t, "paid", session.PaymentStatus)
	assert.Equal(t, "c", session.Metadata["course_id"])

	_, err = verifier.ConstructEvent(payload, signed(payload, "other", now))
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = verifier.ConstructEvent(payload, signed(payload, "whsec_test", now.Add(-10*time.Minute)))
	assert.ErrorIs(t, err, ErrTimestampTooOld)

	_, err = verifier.ConstructEvent(payload, "")
	assert.ErrorIs(t, err, ErrNoSignature)

	tampered := append([]byte(nil), payload...)
	tampered[len(tampered)-3] = ' '
	_, err = verifier.ConstructEvent(tampered, signed(payload, "whsec_test", now))
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = NewWebhookVerifier("").ConstructEvent(payload, signed(payload, "", now))
	assert.Error(t, err)
}
