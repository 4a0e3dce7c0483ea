package service

import (
	"context"
	"time"

	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/benx421/payment-gateway/ledger/internal/repository"
	"github.com/google/uuid"
)

// BalancePaymentService settles charges directly from the paying account's
// balance. The paying side is escrowed first: reserve, move the money, then
// commit or release the reservation. Any downstream failure is compensated
// before the error leaves the strategy.
type BalancePaymentService struct {
	accounts     repository.AccountRepository
	payments     repository.ChargePaymentRepository
	transactions *TransactionService
	holds        *HoldService
	ledger       *LedgerService
}

// NewBalancePaymentService creates a new BalancePaymentService
func NewBalancePaymentService(
	accounts repository.AccountRepository,
	payments repository.ChargePaymentRepository,
	transactions *TransactionService,
	holds *HoldService,
	ledger *LedgerService,
) *BalancePaymentService {
	return &BalancePaymentService{
		accounts:     accounts,
		payments:     payments,
		transactions: transactions,
		holds:        holds,
		ledger:       ledger,
	}
}

// Pay moves the charge amount from the destination (payer) to the
// originator. The debit is escrowed on the payer; the credit runs inside its
// own leg and a failure there cancels the hold and fails the debit leg with
// the same message before the error is re-raised.
func (s *BalancePaymentService) Pay(ctx context.Context, req *PaymentRequest) error {
	charge := req.Charge

	payer, err := s.accounts.FindByUserID(ctx, charge.DestinationUserID)
	if err != nil {
		return accountNotFoundError(err)
	}

	payee, err := s.accounts.FindByUserID(ctx, charge.OriginatorUserID)
	if err != nil {
		return accountNotFoundError(err)
	}

	if payer.AvailableBalance().LessThan(charge.Amount) {
		return &ServiceError{
			Code:     ErrCodeInsufficientBalance,
			Severity: SeverityClient,
			Message:  "insufficient balance to pay the charge",
		}
	}

	if err := s.settle(ctx, charge, payer, payee, models.HoldTypeChargePayment, models.PurposeChargePayment); err != nil {
		return err
	}

	paidAt := time.Now()
	payment := &models.ChargePayment{
		ID:            uuid.New(),
		ChargeID:      charge.ID,
		PaymentMethod: models.PaymentMethodAccountBalance,
		PaidAt:        &paidAt,
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return &ServiceError{
			Code:     ErrCodeInternalError,
			Severity: SeverityServer,
			Message:  "failed to record charge payment",
			Err:      err,
		}
	}

	return nil
}

// Cancel refunds a paid charge: the pay flow mirrored with roles reversed,
// escrowing the originator and crediting the destination.
func (s *BalancePaymentService) Cancel(ctx context.Context, charge *models.Charge, payment *models.ChargePayment) error {
	payer, err := s.accounts.FindByUserID(ctx, charge.OriginatorUserID)
	if err != nil {
		return accountNotFoundError(err)
	}

	payee, err := s.accounts.FindByUserID(ctx, charge.DestinationUserID)
	if err != nil {
		return accountNotFoundError(err)
	}

	if payer.AvailableBalance().LessThan(charge.Amount) {
		return &ServiceError{
			Code:     ErrCodeInsufficientBalance,
			Severity: SeverityClient,
			Message:  "insufficient balance to refund the charge",
		}
	}

	if err := s.settle(ctx, charge, payer, payee, models.HoldTypeChargeRefund, models.PurposeChargeRefund); err != nil {
		return err
	}

	cancelledAt := time.Now()
	payment.CancelledAt = &cancelledAt

	if err := s.payments.Update(ctx, payment); err != nil {
		return &ServiceError{
			Code:     ErrCodeInternalError,
			Severity: SeverityServer,
			Message:  "failed to record charge refund",
			Err:      err,
		}
	}

	return nil
}

// settle runs the escrowed two-leg movement from payer to payee
func (s *BalancePaymentService) settle(
	ctx context.Context,
	charge *models.Charge,
	payer *models.Account,
	payee *models.Account,
	holdType models.HoldBalanceType,
	purpose models.TransactionPurpose,
) error {
	hold, err := s.holds.CreateHold(ctx, payer, charge.Amount, holdType)
	if err != nil {
		return err
	}

	debit, err := s.transactions.CreateDebitLeg(ctx, payer, payee, charge.Amount, purpose, hold, charge.ID)
	if err != nil {
		_ = s.holds.CancelHold(ctx, payer, hold) //nolint:errcheck // compensation is best effort once recording failed
		return &ServiceError{
			Code:     ErrCodeInternalError,
			Severity: SeverityServer,
			Message:  "failed to record debit leg",
			Err:      err,
		}
	}

	if err := s.credit(ctx, charge, payer, payee, purpose); err != nil {
		_ = s.holds.CancelHold(ctx, payer, hold)                             //nolint:errcheck // original failure takes precedence
		_ = s.transactions.CompleteFailed(ctx, debit, failureMessage(err))   //nolint:errcheck // original failure takes precedence
		return err
	}

	if err := s.holds.ConfirmHold(ctx, payer, hold); err != nil {
		_ = s.ledger.Withdraw(ctx, payee, charge.Amount)                   //nolint:errcheck // original failure takes precedence
		_ = s.holds.CancelHold(ctx, payer, hold)                           //nolint:errcheck // original failure takes precedence
		_ = s.transactions.CompleteFailed(ctx, debit, failureMessage(err)) //nolint:errcheck // original failure takes precedence
		return err
	}

	if err := s.transactions.CompleteSuccess(ctx, debit); err != nil {
		return &ServiceError{
			Code:     ErrCodeInternalError,
			Severity: SeverityServer,
			Message:  "failed to finalize debit leg",
			Err:      err,
		}
	}

	return nil
}

// credit deposits the amount to the payee inside its own ledger leg
func (s *BalancePaymentService) credit(
	ctx context.Context,
	charge *models.Charge,
	payer *models.Account,
	payee *models.Account,
	purpose models.TransactionPurpose,
) error {
	leg, err := s.transactions.CreateCreditLeg(ctx, payee, payer, charge.Amount, purpose, nil, charge.ID)
	if err != nil {
		return &ServiceError{
			Code:     ErrCodeInternalError,
			Severity: SeverityServer,
			Message:  "failed to record credit leg",
			Err:      err,
		}
	}

	if err := s.ledger.Deposit(ctx, payee, charge.Amount); err != nil {
		_ = s.transactions.CompleteFailed(ctx, leg, failureMessage(err)) //nolint:errcheck // original failure takes precedence
		return err
	}

	if err := s.transactions.CompleteSuccess(ctx, leg); err != nil {
		return &ServiceError{
			Code:     ErrCodeInternalError,
			Severity: SeverityServer,
			Message:  "failed to finalize credit leg",
			Err:      err,
		}
	}

	return nil
}

func accountNotFoundError(err error) error {
	return &ServiceError{
		Code:     ErrCodeAccountNotFound,
		Severity: SeverityClient,
		Message:  "account not found",
		Err:      err,
	}
}
