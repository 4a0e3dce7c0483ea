package service

import (
	"context"
	"fmt"
	"time"

	"github.com/benx421/payment-gateway/ledger/internal/authorizer"
	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/benx421/payment-gateway/ledger/internal/repository"
	"github.com/google/uuid"
)

// CardPaymentService settles charges through the external card authorizer.
// Payment needs no escrow since the money arrives from outside the ledger,
// but a refund debits the originator's balance and is escrowed like a
// balance refund.
type CardPaymentService struct {
	accounts     repository.AccountRepository
	users        repository.UserRepository
	payments     repository.ChargePaymentRepository
	transactions *TransactionService
	holds        *HoldService
	ledger       *LedgerService
	gateway      AuthorizerGateway
}

// NewCardPaymentService creates a new CardPaymentService
func NewCardPaymentService(
	accounts repository.AccountRepository,
	users repository.UserRepository,
	payments repository.ChargePaymentRepository,
	transactions *TransactionService,
	holds *HoldService,
	ledger *LedgerService,
	gateway AuthorizerGateway,
) *CardPaymentService {
	return &CardPaymentService{
		accounts:     accounts,
		users:        users,
		payments:     payments,
		transactions: transactions,
		holds:        holds,
		ledger:       ledger,
		gateway:      gateway,
	}
}

// Pay authorizes the card with the external authorizer and, if approved,
// credits the originator. The authorization identifier is deterministic per
// charge so the authorizer sees retries of the same charge as the same
// operation.
func (s *CardPaymentService) Pay(ctx context.Context, req *PaymentRequest) error {
	charge := req.Charge

	payerUser, err := s.users.FindByID(ctx, charge.DestinationUserID)
	if err != nil {
		return userNotFoundError(err)
	}

	payee, err := s.accounts.FindByUserID(ctx, charge.OriginatorUserID)
	if err != nil {
		return accountNotFoundError(err)
	}

	authorizationIdentifier := fmt.Sprintf("%s_%s", authorizer.PurposeCardPayment, charge.Identifier)

	authorized, err := s.gateway.Authorize(ctx, authorizer.PurposeCardPayment, authorizer.Request{
		CPF:        payerUser.CPF,
		Identifier: authorizationIdentifier,
		Amount:     charge.Amount,
		Card:       req.Card,
	})
	if err != nil {
		return mapAuthorizerError(err)
	}

	if !authorized {
		return &ServiceError{
			Code:     ErrCodeAuthorizationFailed,
			Severity: SeverityClient,
			Message:  "charge payment not authorized",
		}
	}

	if err := s.creditPayee(ctx, charge, payee, models.PurposeChargePayment, &authorizationIdentifier); err != nil {
		return err
	}

	paidAt := time.Now()
	lastFour := maskCardNumber(req.Card.Number)
	payment := &models.ChargePayment{
		ID:                      uuid.New(),
		ChargeID:                charge.ID,
		PaymentMethod:           models.PaymentMethodCreditCard,
		AuthorizationIdentifier: &authorizationIdentifier,
		CardLastFour:            &lastFour,
		PaidAt:                  &paidAt,
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

// Cancel refunds a card payment: the originator's balance is escrowed, the
// refund is authorized against the original authorization identifier, and
// only then does the money move back to the destination. A declined or
// failed authorization releases the hold before the error is raised.
func (s *CardPaymentService) Cancel(ctx context.Context, charge *models.Charge, payment *models.ChargePayment) error {
	payer, err := s.accounts.FindByUserID(ctx, charge.OriginatorUserID)
	if err != nil {
		return accountNotFoundError(err)
	}

	payee, err := s.accounts.FindByUserID(ctx, charge.DestinationUserID)
	if err != nil {
		return accountNotFoundError(err)
	}

	payerUser, err := s.users.FindByID(ctx, charge.OriginatorUserID)
	if err != nil {
		return userNotFoundError(err)
	}

	if payer.AvailableBalance().LessThan(charge.Amount) {
		return &ServiceError{
			Code:     ErrCodeInsufficientBalance,
			Severity: SeverityClient,
			Message:  "insufficient balance to refund the charge",
		}
	}

	if payment.AuthorizationIdentifier == nil {
		return &ServiceError{
			Code:     ErrCodeChargeCancelError,
			Severity: SeverityServer,
			Message:  "charge payment has no authorization identifier",
		}
	}

	hold, err := s.holds.CreateHold(ctx, payer, charge.Amount, models.HoldTypeChargeRefund)
	if err != nil {
		return err
	}

	debit, err := s.transactions.CreateDebitLeg(ctx, payer, payee, charge.Amount, models.PurposeChargeRefund, hold, charge.ID)
	if err != nil {
		_ = s.holds.CancelHold(ctx, payer, hold) //nolint:errcheck // compensation is best effort once recording failed
		return &ServiceError{
			Code:     ErrCodeInternalError,
			Severity: SeverityServer,
			Message:  "failed to record debit leg",
			Err:      err,
		}
	}

	authorized, err := s.gateway.Authorize(ctx, authorizer.PurposeCardRefund, authorizer.Request{
		CPF:        payerUser.CPF,
		Identifier: *payment.AuthorizationIdentifier,
		Amount:     charge.Amount,
	})
	if err != nil {
		authErr := mapAuthorizerError(err)
		_ = s.holds.CancelHold(ctx, payer, hold)                               //nolint:errcheck // original failure takes precedence
		_ = s.transactions.CompleteFailed(ctx, debit, failureMessage(authErr)) //nolint:errcheck // original failure takes precedence
		return authErr
	}

	if !authorized {
		declineErr := &ServiceError{
			Code:     ErrCodeAuthorizationFailed,
			Severity: SeverityClient,
			Message:  "charge refund not authorized",
		}
		_ = s.holds.CancelHold(ctx, payer, hold)                                  //nolint:errcheck // original failure takes precedence
		_ = s.transactions.CompleteFailed(ctx, debit, declineErr.Message)         //nolint:errcheck // original failure takes precedence
		return declineErr
	}

	if err := s.creditPayee(ctx, charge, payee, models.PurposeChargeRefund, nil); err != nil {
		_ = s.holds.CancelHold(ctx, payer, hold)                           //nolint:errcheck // original failure takes precedence
		_ = s.transactions.CompleteFailed(ctx, debit, failureMessage(err)) //nolint:errcheck // original failure takes precedence
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

// creditPayee deposits the charge amount to the payee inside its own leg.
// The counterpart on a card credit is the originator-facing account of the
// movement; for a card payment the counterpart is the payee itself since the
// funds arrive from outside the ledger.
func (s *CardPaymentService) creditPayee(
	ctx context.Context,
	charge *models.Charge,
	payee *models.Account,
	purpose models.TransactionPurpose,
	authorizationIdentifier *string,
) error {
	leg, err := s.transactions.CreateCreditLeg(ctx, payee, payee, charge.Amount, purpose, authorizationIdentifier, charge.ID)
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

func maskCardNumber(number string) string {
	if len(number) < 4 {
		return number
	}
	return number[len(number)-4:]
}

func userNotFoundError(err error) error {
	return &ServiceError{
		Code:     ErrCodeUserNotFound,
		Severity: SeverityClient,
		Message:  "user not found",
		Err:      err,
	}
}
