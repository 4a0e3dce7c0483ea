package authorizer

import (
	"context"
	"fmt"
)

// Strategy authorizes requests for one purpose
type Strategy interface {
	Authorize(ctx context.Context, req Request) (bool, error)
}

// Gateway routes authorization requests to the strategy for their purpose.
// Dispatch is an exhaustive map keyed by purpose, so adding a purpose without
// registering a strategy fails loudly instead of silently matching nothing.
type Gateway struct {
	strategies map[Purpose]Strategy
}

// NewGateway creates a Gateway with the standard strategy set
func NewGateway(client *Client) *Gateway {
	return &Gateway{
		strategies: map[Purpose]Strategy{
			PurposeDeposit:     &depositStrategy{client: client},
			PurposeCardPayment: &cardPaymentStrategy{client: client},
			PurposeCardRefund:  &cardRefundStrategy{client: client},
		},
	}
}

// Authorize dispatches to the strategy registered for the purpose
func (g *Gateway) Authorize(ctx context.Context, purpose Purpose, req Request) (bool, error) {
	strategy, ok := g.strategies[purpose]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrPurposeNotSupported, purpose)
	}

	return strategy.Authorize(ctx, req)
}

// depositStrategy authorizes self-deposits. No card fields are sent.
type depositStrategy struct {
	client *Client
}

func (s *depositStrategy) Authorize(ctx context.Context, req Request) (bool, error) {
	req.Card = nil
	return s.client.Authorize(ctx, req)
}

// cardPaymentStrategy authorizes credit card charge payments. Card details
// are validated locally before the authorizer is called.
type cardPaymentStrategy struct {
	client *Client
}

func (s *cardPaymentStrategy) Authorize(ctx context.Context, req Request) (bool, error) {
	if err := ValidateCard(req.Card); err != nil {
		return false, err
	}

	return s.client.Authorize(ctx, req)
}

// cardRefundStrategy authorizes refunds of card payments using the original
// authorization identifier. The card itself is not re-validated; the refund
// references the already-authorized payment.
type cardRefundStrategy struct {
	client *Client
}

func (s *cardRefundStrategy) Authorize(ctx context.Context, req Request) (bool, error) {
	req.Card = nil
	return s.client.Authorize(ctx, req)
}
