package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	config "github.com/anjiri1684/course_market/configs"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// CheckoutParams describes a single-item checkout whose proceeds, minus the
// platform fee, go to the instructor's connected account.
type CheckoutParams struct {
	ProductName string
	AmountCents int64
	FeeCents    int64
	Destination string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}

// Account is a connected account. Raw keeps the processor's full response.
type Account struct {
	ID             string          `json:"id"`
	ChargesEnabled bool            `json:"charges_enabled"`
	Raw            json.RawMessage `json:"-"`
}

type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type StripeClient struct {
	client      *resty.Client
	currency    string
	redirectURL string
}

func NewStripeClient(cfg *config.Config) *StripeClient {
	client := resty.New().
		SetBaseURL(cfg.StripeAPIBase).
		SetAuthToken(cfg.StripeSecretKey).
		SetTimeout(cfg.HTTPClientTimeout)

	return &StripeClient{
		client:      client,
		currency:    cfg.Currency,
		redirectURL: cfg.StripeRedirectURL,
	}
}

func (s *StripeClient) do(ctx context.Context, method, path string, form url.Values, out interface{}) ([]byte, error) {
	req := s.client.R().SetContext(ctx)
	if form != nil {
		req.SetFormDataFromValues(form)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, errors.Wrapf(err, "stripe %s %s", method, path)
	}
	if resp.IsError() {
		var apiErr stripeError
		if json.Unmarshal(resp.Body(), &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("stripe %s %s: %s", method, path, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("stripe %s %s: status %d", method, path, resp.StatusCode())
	}
	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return nil, errors.Wrap(err, "decode stripe response")
		}
	}
	return resp.Body(), nil
}

func (s *StripeClient) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", s.currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(p.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", p.ProductName)
	form.Set("payment_intent_data[application_fee_amount]", strconv.FormatInt(p.FeeCents, 10))
	form.Set("payment_intent_data[transfer_data][destination]", p.Destination)
	form.Set("success_url", p.SuccessURL)
	form.Set("cancel_url", p.CancelURL)
	for k, v := range p.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var session CheckoutSession
	if _, err := s.do(ctx, resty.MethodPost, "/v1/checkout/sessions", form, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *StripeClient) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	var session CheckoutSession
	if _, err := s.do(ctx, resty.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(sessionID), nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// CreateAccount opens an Express connected account for an instructor.
func (s *StripeClient) CreateAccount(ctx context.Context, email string) (*Account, error) {
	form := url.Values{}
	form.Set("type", "express")
	if email != "" {
		form.Set("email", email)
	}
	var account Account
	raw, err := s.do(ctx, resty.MethodPost, "/v1/accounts", form, &account)
	if err != nil {
		return nil, err
	}
	account.Raw = raw
	return &account, nil
}

// CreateAccountLink returns the onboarding URL for accountID.
func (s *StripeClient) CreateAccountLink(ctx context.Context, accountID string) (string, error) {
	form := url.Values{}
	form.Set("account", accountID)
	form.Set("refresh_url", s.redirectURL)
	form.Set("return_url", s.redirectURL)
	form.Set("type", "account_onboarding")

	var link struct {
		URL string `json:"url"`
	}
	if _, err := s.do(ctx, resty.MethodPost, "/v1/account_links", form, &link); err != nil {
		return "", err
	}
	return link.URL, nil
}

func (s *StripeClient) RetrieveAccount(ctx context.Context, accountID string) (*Account, error) {
	var account Account
	raw, err := s.do(ctx, resty.MethodGet, "/v1/accounts/"+url.PathEscape(accountID), nil, &account)
	if err != nil {
		return nil, err
	}
	account.Raw = raw
	return &account, nil
}
