package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benx421/payment-gateway/ledger/internal/authorizer"
	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/benx421/payment-gateway/ledger/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// defaultListStatuses is what charge listings return when the caller does
// not filter explicitly. Failed terminal states are excluded by default.
var defaultListStatuses = []models.ChargeStatus{
	models.ChargeStatusPending,
	models.ChargeStatusPaid,
	models.ChargeStatusCancelled,
}

// ChargeSettler settles and refunds charges through the payment method's
// strategy
type ChargeSettler interface {
	Pay(ctx context.Context, method models.PaymentMethod, req *PaymentRequest) error
	Cancel(ctx context.Context, charge *models.Charge, payment *models.ChargePayment) error
}

// ChargeService owns the charge lifecycle: creation, payment, cancellation
// and listing. Settlement itself is delegated to the settler; this layer
// enforces who may act on a charge and in which states, and records the
// outcome on the charge row.
type ChargeService struct {
	charges  repository.ChargeRepository
	payments repository.ChargePaymentRepository
	users    repository.UserRepository
	router   ChargeSettler
}

// NewChargeService creates a new ChargeService
func NewChargeService(
	charges repository.ChargeRepository,
	payments repository.ChargePaymentRepository,
	users repository.UserRepository,
	router ChargeSettler,
) *ChargeService {
	return &ChargeService{
		charges:  charges,
		payments: payments,
		users:    users,
		router:   router,
	}
}

// Create opens a PENDING charge from the originator to the user owning the
// destination CPF
func (s *ChargeService) Create(
	ctx context.Context,
	originatorUserID uuid.UUID,
	destinationCPF string,
	amount decimal.Decimal,
	description string,
) (*models.Charge, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, &ServiceError{
			Code:     ErrCodeInvalidAmount,
			Severity: SeverityClient,
			Message:  "charge amount must be greater than 0",
		}
	}

	originator, err := s.users.FindByID(ctx, originatorUserID)
	if err != nil {
		return nil, userNotFoundError(err)
	}

	if originator.CPF == destinationCPF {
		return nil, &ServiceError{
			Code:     ErrCodeChargeSameAsOriginator,
			Severity: SeverityClient,
			Message:  "cannot charge your own account",
		}
	}

	destination, err := s.users.FindByCPF(ctx, destinationCPF)
	if err != nil {
		return nil, userNotFoundError(err)
	}

	charge := &models.Charge{
		ID:                uuid.New(),
		Identifier:        fmt.Sprintf("chg_%s", uuid.New()),
		OriginatorUserID:  originator.ID,
		DestinationUserID: destination.ID,
		Amount:            amount,
		Description:       description,
		Status:            models.ChargeStatusPending,
		CreatedAt:         time.Now(),
	}

	if err := s.charges.Create(ctx, charge); err != nil {
		return nil, &ServiceError{
			Code:     ErrCodeInternalError,
			Severity: SeverityServer,
			Message:  "failed to create charge",
			Err:      err,
		}
	}

	return charge, nil
}

// Pay settles a PENDING charge with the given payment method. Only the
// charge's destination may pay it. A failed settlement moves the charge to
// PAYMENT_FAILED with the failure detail persisted on the row; a successful
// one moves it to PAID and clears any previous error message.
func (s *ChargeService) Pay(
	ctx context.Context,
	callerUserID uuid.UUID,
	identifier string,
	method models.PaymentMethod,
	card *authorizer.CardDetails,
) (*models.Charge, error) {
	charge, err := s.findCharge(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if charge.DestinationUserID != callerUserID || charge.Status != models.ChargeStatusPending {
		return nil, &ServiceError{
			Code:     ErrCodeChargeNotAllowedToPay,
			Severity: SeverityClient,
			Message:  "charge is not allowed to be paid",
		}
	}

	if err := s.router.Pay(ctx, method, &PaymentRequest{Charge: charge, Card: card}); err != nil {
		return nil, s.recordPaymentFailure(ctx, charge, err)
	}

	if err := s.transition(ctx, charge, models.ChargeStatusPaid, nil); err != nil {
		return nil, err
	}

	return charge, nil
}

// Cancel voids a charge. Only the originator may cancel, and only from
// PENDING or PAID. A PENDING charge is voided directly; a PAID one is
// refunded through the method it was settled with, and a refund failure
// parks the charge in CANCELLED_FAILED with the detail persisted.
func (s *ChargeService) Cancel(ctx context.Context, callerUserID uuid.UUID, identifier string) (*models.Charge, error) {
	charge, err := s.findCharge(ctx, identifier)
	if err != nil {
		return nil, err
	}

	cancellable := charge.Status == models.ChargeStatusPending || charge.Status == models.ChargeStatusPaid
	if charge.OriginatorUserID != callerUserID || !cancellable {
		return nil, &ServiceError{
			Code:     ErrCodeChargeNotAllowedToCancel,
			Severity: SeverityClient,
			Message:  "charge is not allowed to be cancelled",
		}
	}

	if charge.Status == models.ChargeStatusPending {
		if err := s.transition(ctx, charge, models.ChargeStatusCancelled, nil); err != nil {
			return nil, err
		}
		return charge, nil
	}

	payment, err := s.payments.FindByChargeID(ctx, charge.ID)
	if err != nil {
		return nil, &ServiceError{
			Code:     ErrCodeChargeCancelError,
			Severity: SeverityServer,
			Message:  "failed to load charge payment",
			Err:      err,
		}
	}

	if err := s.router.Cancel(ctx, charge, payment); err != nil {
		return nil, s.recordCancelFailure(ctx, charge, err)
	}

	if err := s.transition(ctx, charge, models.ChargeStatusCancelled, nil); err != nil {
		return nil, err
	}

	return charge, nil
}

// SentCharges lists the charges the user created. An empty status filter
// defaults to the non-failed states.
func (s *ChargeService) SentCharges(ctx context.Context, userID uuid.UUID, statuses []models.ChargeStatus) ([]*models.Charge, error) {
	if len(statuses) == 0 {
		statuses = defaultListStatuses
	}

	charges, err := s.charges.ListByOriginator(ctx, userID, statuses)
	if err != nil {
		return nil, &ServiceError{
			Code:     ErrCodeInternalError,
			Severity: SeverityServer,
			Message:  "failed to list charges",
			Err:      err,
		}
	}

	return charges, nil
}

// ReceivedCharges lists the charges addressed to the user. An empty status
// filter defaults to the non-failed states.
func (s *ChargeService) ReceivedCharges(ctx context.Context, userID uuid.UUID, statuses []models.ChargeStatus) ([]*models.Charge, error) {
	if len(statuses) == 0 {
		statuses = defaultListStatuses
	}

	charges, err := s.charges.ListByDestination(ctx, userID, statuses)
	if err != nil {
		return nil, &ServiceError{
			Code:     ErrCodeInternalError,
			Severity: SeverityServer,
			Message:  "failed to list charges",
			Err:      err,
		}
	}

	return charges, nil
}

func (s *ChargeService) findCharge(ctx context.Context, identifier string) (*models.Charge, error) {
	charge, err := s.charges.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{
				Code:     ErrCodeChargeNotFound,
				Severity: SeverityClient,
				Message:  "charge not found",
				Err:      err,
			}
		}
		return nil, &ServiceError{
			Code:     ErrCodeInternalError,
			Severity: SeverityServer,
			Message:  "failed to load charge",
			Err:      err,
		}
	}

	return charge, nil
}

// recordPaymentFailure parks the charge in PAYMENT_FAILED with the failure
// detail and re-raises the settlement error. Typed business failures bubble
// unchanged; anything else is wrapped as a charge payment error.
func (s *ChargeService) recordPaymentFailure(ctx context.Context, charge *models.Charge, cause error) error {
	message := failureMessage(cause)
	if err := s.transition(ctx, charge, models.ChargeStatusPaymentFailed, &message); err != nil {
		return &ServiceError{
			Code:     ErrCodeChargePaymentError,
			Severity: SeverityServer,
			Message:  "charge payment failed and the failure could not be recorded",
			Err:      errors.Join(cause, err),
		}
	}

	if isBusinessError(cause) {
		return cause
	}

	return &ServiceError{
		Code:     ErrCodeChargePaymentError,
		Severity: SeverityServer,
		Message:  "charge payment failed",
		Err:      cause,
	}
}

// recordCancelFailure parks the charge in CANCELLED_FAILED with the failure
// detail and re-raises the refund error
func (s *ChargeService) recordCancelFailure(ctx context.Context, charge *models.Charge, cause error) error {
	message := failureMessage(cause)
	if err := s.transition(ctx, charge, models.ChargeStatusCancelledFailed, &message); err != nil {
		return &ServiceError{
			Code:     ErrCodeChargeCancelError,
			Severity: SeverityServer,
			Message:  "charge cancellation failed and the failure could not be recorded",
			Err:      errors.Join(cause, err),
		}
	}

	if isBusinessError(cause) {
		return cause
	}

	return &ServiceError{
		Code:     ErrCodeChargeCancelError,
		Severity: SeverityServer,
		Message:  "charge cancellation failed",
		Err:      cause,
	}
}

func (s *ChargeService) transition(ctx context.Context, charge *models.Charge, status models.ChargeStatus, errorMessage *string) error {
	if err := s.charges.UpdateStatus(ctx, charge.ID, status, errorMessage); err != nil {
		return &ServiceError{
			Code:     ErrCodeInternalError,
			Severity: SeverityServer,
			Message:  "failed to update charge status",
			Err:      err,
		}
	}

	charge.Status = status
	charge.ErrorMessage = errorMessage

	return nil
}
