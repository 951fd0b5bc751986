package services

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
	"github.com/stripe/stripe-go/v80/refund"
	"github.com/stripe/stripe-go/v80/webhook"
)

// PaymentIntentResult is what the order flow needs back from the gateway:
// the transaction id recorded on the order and the client-side continuation
// token the customer completes payment with.
type PaymentIntentResult struct {
	ID           string
	ClientSecret string
}

// PaymentGateway abstracts the external payment processor.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*PaymentIntentResult, error)
	Refund(ctx context.Context, paymentIntentID string) error
	ParseWebhook(r *http.Request) (stripe.Event, error)
}

// StripeService implements PaymentGateway against Stripe.
type StripeService struct {
	SecretKey  string
	WebhookKey string
}

// NewStripeService configures the Stripe client with the account secret key.
func NewStripeService(secretKey, webhookKey string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{SecretKey: secretKey, WebhookKey: webhookKey}
}

func (s *StripeService) CreatePaymentIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*PaymentIntentResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	return &PaymentIntentResult{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (s *StripeService) Refund(ctx context.Context, paymentIntentID string) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	params.Context = ctx

	_, err := refund.New(params)
	return err
}

// ParseWebhook verifies the Stripe-Signature header against the shared
// webhook secret and returns the parsed event. Signature mismatch fails
// closed with no side effects.
func (s *StripeService) ParseWebhook(r *http.Request) (stripe.Event, error) {
	var event stripe.Event
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return event, err
	}
	r.Body = io.NopCloser(bytes.NewBuffer(payload))

	sigHeader := r.Header.Get("Stripe-Signature")
	return webhook.ConstructEvent(payload, sigHeader, s.WebhookKey)
}
