package service

import (
	"context"

	"github.com/benx421/payment-gateway/ledger/internal/authorizer"
	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HealthChecker validates system health.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// AuthorizerGateway dispatches an authorization request to the external
// authorizer strategy registered for the purpose
type AuthorizerGateway interface {
	Authorize(ctx context.Context, purpose authorizer.Purpose, req authorizer.Request) (bool, error)
}

// Depositor handles account balance queries and self-deposits
type Depositor interface {
	SelfDeposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.Transaction, error)
	Balance(ctx context.Context, userID uuid.UUID) (*models.Account, error)
}

// HoldQuerier looks up balance reservations
type HoldQuerier interface {
	Hold(ctx context.Context, id uuid.UUID) (*models.HoldBalance, error)
}

// ChargeManager handles the charge lifecycle
type ChargeManager interface {
	Create(ctx context.Context, originatorUserID uuid.UUID, destinationCPF string, amount decimal.Decimal, description string) (*models.Charge, error)
	Pay(ctx context.Context, callerUserID uuid.UUID, identifier string, method models.PaymentMethod, card *authorizer.CardDetails) (*models.Charge, error)
	Cancel(ctx context.Context, callerUserID uuid.UUID, identifier string) (*models.Charge, error)
	SentCharges(ctx context.Context, userID uuid.UUID, statuses []models.ChargeStatus) ([]*models.Charge, error)
	ReceivedCharges(ctx context.Context, userID uuid.UUID, statuses []models.ChargeStatus) ([]*models.Charge, error)
}

// Ensure concrete types implement interfaces
var (
	_ AuthorizerGateway = (*authorizer.Gateway)(nil)
	_ Depositor         = (*DepositService)(nil)
	_ HoldQuerier       = (*HoldService)(nil)
	_ ChargeManager     = (*ChargeService)(nil)
	_ ChargeSettler     = (*PaymentService)(nil)
)
