// Package paymentintent fronts the external payment provider. The
// backend never sees card data; it creates an intent for the amount
// and hands the provider's client secret back to the frontend, which
// completes the charge directly with the provider.
package paymentintent

import (
	"context"
	"errors"
)

// ErrInvalidAmount is returned for non-positive amounts before the
// provider is ever contacted.
var ErrInvalidAmount = errors.New("amount must be a positive number of cents")

// Provider creates payment intents. Stripe in production, a stub in
// tests.
type Provider interface {
	// CreateIntent registers an intent to charge amountCents (usd,
	// card-only) and returns the client secret the frontend needs to
	// confirm the payment.
	CreateIntent(ctx context.Context, amountCents int64) (clientSecret string, err error)
}
