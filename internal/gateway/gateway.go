// Package gateway talks to the payment provider.
package gateway

import (
	"context"
)

const StatusSucceeded = "succeeded"

// Intent is the provider-neutral view of a payment intent. Amount is in
// minor units.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64
	Currency     string
	Metadata     map[string]string
}

type CreateIntentInput struct {
	Amount         int64
	Currency       string
	Metadata       map[string]string
	IdempotencyKey string
}

type PaymentGateway interface {
	CreateIntent(ctx context.Context, in CreateIntentInput) (*Intent, error)
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)
}
