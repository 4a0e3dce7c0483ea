package handlers

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/benx421/payment-gateway/ledger/internal/authorizer"
	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/benx421/payment-gateway/ledger/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubDepositor implements service.Depositor with canned responses
type stubDepositor struct {
	txn     *models.Transaction
	account *models.Account
	err     error
}

func (s *stubDepositor) SelfDeposit(_ context.Context, _ uuid.UUID, _ decimal.Decimal) (*models.Transaction, error) {
	return s.txn, s.err
}

func (s *stubDepositor) Balance(_ context.Context, _ uuid.UUID) (*models.Account, error) {
	return s.account, s.err
}

// stubChargeManager implements service.ChargeManager with canned responses
type stubChargeManager struct {
	charge     *models.Charge
	charges    []*models.Charge
	err        error
	lastMethod models.PaymentMethod
	lastCard   *authorizer.CardDetails
}

func (s *stubChargeManager) Create(_ context.Context, _ uuid.UUID, _ string, _ decimal.Decimal, _ string) (*models.Charge, error) {
	return s.charge, s.err
}

func (s *stubChargeManager) Pay(_ context.Context, _ uuid.UUID, _ string, method models.PaymentMethod, card *authorizer.CardDetails) (*models.Charge, error) {
	s.lastMethod = method
	s.lastCard = card
	return s.charge, s.err
}

func (s *stubChargeManager) Cancel(_ context.Context, _ uuid.UUID, _ string) (*models.Charge, error) {
	return s.charge, s.err
}

func (s *stubChargeManager) SentCharges(_ context.Context, _ uuid.UUID, _ []models.ChargeStatus) ([]*models.Charge, error) {
	return s.charges, s.err
}

func (s *stubChargeManager) ReceivedCharges(_ context.Context, _ uuid.UUID, _ []models.ChargeStatus) ([]*models.Charge, error) {
	return s.charges, s.err
}

type stubHealthChecker struct {
	err error
}

func (s *stubHealthChecker) PingContext(_ context.Context) error {
	return s.err
}

// stubHoldQuerier implements service.HoldQuerier with canned responses
type stubHoldQuerier struct {
	hold *models.HoldBalance
	err  error
}

func (s *stubHoldQuerier) Hold(_ context.Context, _ uuid.UUID) (*models.HoldBalance, error) {
	return s.hold, s.err
}

func newTestHandler(t *testing.T, depositor service.Depositor, charges service.ChargeManager, health service.HealthChecker) *Handler {
	t.Helper()
	return NewHandler(depositor, charges, &stubHoldQuerier{}, health, testLogger())
}
