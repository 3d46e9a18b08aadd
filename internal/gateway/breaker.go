package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

type breakerGateway struct {
	next PaymentGateway
	cb   *gobreaker.CircuitBreaker
}

// WithBreaker fails calls fast once the provider keeps erroring. Client
// errors (4xx from the provider) do not count against it.
func WithBreaker(next PaymentGateway, log *zap.Logger) PaymentGateway {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "payment-gateway",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isClientError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return &breakerGateway{next: next, cb: cb}
}

func (b *breakerGateway) CreateIntent(ctx context.Context, in CreateIntentInput) (*Intent, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.CreateIntent(ctx, in)
	})
	if err != nil {
		return nil, err
	}
	return out.(*Intent), nil
}

func (b *breakerGateway) RetrieveIntent(ctx context.Context, id string) (*Intent, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.RetrieveIntent(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return out.(*Intent), nil
}

func isClientError(err error) bool {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return stripeErr.HTTPStatusCode >= http.StatusBadRequest &&
			stripeErr.HTTPStatusCode < http.StatusInternalServerError &&
			stripeErr.HTTPStatusCode != http.StatusTooManyRequests
	}
	return errors.Is(err, context.Canceled)
}
