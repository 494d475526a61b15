package providers

import (
	"context"
	"errors"
	"math"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
	"github.com/stripe/stripe-go/v80/refund"
)

// StripeGateway implements PaymentGateway using Stripe PaymentIntents.
type StripeGateway struct {
	secretKey string
}

// NewStripeGateway creates a new StripeGateway.
func NewStripeGateway(secretKey string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{secretKey: secretKey}
}

// Charge creates and confirms a PaymentIntent for the given token.
func (g *StripeGateway) Charge(ctx context.Context, amount float64, currency, token string) (ChargeResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(toMinorUnits(amount)),
		Currency:      stripe.String(currency),
		PaymentMethod: stripe.String(token),
		Confirm:       stripe.Bool(true),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			return ChargeResult{Success: false, ErrorCode: string(stripeErr.Code)}, nil
		}
		return ChargeResult{}, err
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return ChargeResult{Success: false, ErrorCode: string(pi.Status)}, nil
	}
	return ChargeResult{Success: true, TransactionID: pi.ID}, nil
}

// Refund refunds a previously captured PaymentIntent.
func (g *StripeGateway) Refund(ctx context.Context, transactionID string, amount float64, reason string) (RefundResult, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(transactionID),
		Amount:        stripe.Int64(toMinorUnits(amount)),
	}
	params.Context = ctx
	if reason != "" {
		params.Reason = stripe.String(reason)
	}

	r, err := refund.New(params)
	if err != nil {
		return RefundResult{}, err
	}
	return RefundResult{Success: true, RefundID: r.ID}, nil
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
