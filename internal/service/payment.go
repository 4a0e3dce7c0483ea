package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/benx421/payment-gateway/ledger/internal/authorizer"
	"github.com/benx421/payment-gateway/ledger/internal/db"
	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/benx421/payment-gateway/ledger/internal/repository"
)

// PaymentRequest carries everything a strategy needs to settle a charge
type PaymentRequest struct {
	Charge *models.Charge
	Card   *authorizer.CardDetails // required for CREDIT_CARD only
}

// paymentStrategy settles or refunds a charge for one payment method
type paymentStrategy interface {
	Pay(ctx context.Context, req *PaymentRequest) error
	Cancel(ctx context.Context, charge *models.Charge, payment *models.ChargePayment) error
}

// supportedMethods is the exhaustive set of payment methods the engine can
// settle. An unregistered method is a configuration fault, not a silent
// fallthrough.
var supportedMethods = map[models.PaymentMethod]struct{}{
	models.PaymentMethodAccountBalance: {},
	models.PaymentMethodCreditCard:     {},
}

// PaymentService routes settlement to the strategy for the payment method.
// Each settlement runs inside a single database transaction: the reservation,
// both legs and the balance movements commit together or not at all, and any
// strategy failure rolls the whole movement back.
type PaymentService struct {
	db      *db.DB
	gateway AuthorizerGateway
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(database *db.DB, gateway AuthorizerGateway) *PaymentService {
	return &PaymentService{
		db:      database,
		gateway: gateway,
	}
}

// Pay settles the charge using the requested payment method
func (s *PaymentService) Pay(ctx context.Context, method models.PaymentMethod, req *PaymentRequest) error {
	if err := ensureSupported(method); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return beginTxError(err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	if err := s.strategies(tx)[method].Pay(ctx, req); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return commitTxError(err)
	}

	return nil
}

// Cancel refunds a settled charge using the method it was paid with
func (s *PaymentService) Cancel(ctx context.Context, charge *models.Charge, payment *models.ChargePayment) error {
	if err := ensureSupported(payment.PaymentMethod); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return beginTxError(err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	if err := s.strategies(tx)[payment.PaymentMethod].Cancel(ctx, charge, payment); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return commitTxError(err)
	}

	return nil
}

// strategies builds the strategy set over the given query surface, so the
// same wiring serves both transaction-scoped and pool-scoped callers
func (s *PaymentService) strategies(q db.Queryer) map[models.PaymentMethod]paymentStrategy {
	accounts := repository.NewAccountRepository(q)
	users := repository.NewUserRepository(q)
	payments := repository.NewChargePaymentRepository(q)
	holds := repository.NewHoldBalanceRepository(q)

	transactions := NewTransactionService(repository.NewTransactionRepository(q))
	ledger := NewLedgerService(accounts, users, transactions, s.gateway)
	holdService := NewHoldService(accounts, holds, ledger)

	return map[models.PaymentMethod]paymentStrategy{
		models.PaymentMethodAccountBalance: NewBalancePaymentService(accounts, payments, transactions, holdService, ledger),
		models.PaymentMethodCreditCard:     NewCardPaymentService(accounts, users, payments, transactions, holdService, ledger, s.gateway),
	}
}

func ensureSupported(method models.PaymentMethod) error {
	if _, ok := supportedMethods[method]; !ok {
		return &ServiceError{
			Code:     ErrCodePaymentMethodNotSupported,
			Severity: SeverityServer,
			Message:  fmt.Sprintf("no payment strategy for method: %s", method),
		}
	}

	return nil
}

func beginTxError(err error) error {
	return &ServiceError{
		Code:     ErrCodeInternalError,
		Severity: SeverityServer,
		Message:  "failed to start transaction",
		Err:      err,
	}
}

func commitTxError(err error) error {
	return &ServiceError{
		Code:     ErrCodeInternalError,
		Severity: SeverityServer,
		Message:  "failed to commit transaction",
		Err:      err,
	}
}
