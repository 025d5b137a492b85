package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"
)

// ChargeRequest describes an instant (card) settlement attempt.
type ChargeRequest struct {
	Amount        int64
	Currency      string
	PaymentMethod string
	Description   string
	Idempotency   string
}

// Gateway is the external payment processor boundary. The payment record in
// the store stays authoritative; the gateway only moves money.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (string, error)
	Refund(ctx context.Context, reference string) error
}

// StripeGateway settles card payments through Stripe PaymentIntents.
type StripeGateway struct {
	Logger *zap.Logger
}

func (g *StripeGateway) Charge(ctx context.Context, req ChargeRequest) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.Amount),
		Currency:      stripe.String(req.Currency),
		PaymentMethod: stripe.String(req.PaymentMethod),
		Description:   stripe.String(req.Description),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String(string(stripe.PaymentIntentAutomaticPaymentMethodsAllowRedirectsNever)),
		},
	}
	params.Context = ctx
	if req.Idempotency != "" {
		params.SetIdempotencyKey(req.Idempotency)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe charge failed: %w", err)
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return "", fmt.Errorf("stripe charge not settled: intent %s in status %s", intent.ID, intent.Status)
	}

	g.Logger.Info("card payment settled",
		zap.String("intent", intent.ID), zap.Int64("amount", req.Amount))
	return intent.ID, nil
}

func (g *StripeGateway) Refund(ctx context.Context, reference string) error {
	params := &stripe.RefundParams{PaymentIntent: stripe.String(reference)}
	params.Context = ctx

	if _, err := refund.New(params); err != nil {
		return fmt.Errorf("stripe refund failed for intent %s: %w", reference, err)
	}
	g.Logger.Info("card payment refunded", zap.String("intent", reference))
	return nil
}
