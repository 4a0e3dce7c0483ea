package service

import (
	"context"
	"errors"
	"time"

	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/benx421/payment-gateway/ledger/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HoldService manages escrow reservations. A hold reserves capacity against
// the available balance so a concurrent operation cannot spend the same
// funds; confirm commits the debit, cancel releases the reservation with no
// other side effect. Callers must cancel the hold on any downstream failure
// so no reservation is left PENDING after the operation returns.
type HoldService struct {
	accounts repository.AccountRepository
	holds    repository.HoldBalanceRepository
	ledger   *LedgerService
}

// NewHoldService creates a new HoldService
func NewHoldService(
	accounts repository.AccountRepository,
	holds repository.HoldBalanceRepository,
	ledger *LedgerService,
) *HoldService {
	return &HoldService{
		accounts: accounts,
		holds:    holds,
		ledger:   ledger,
	}
}

// CreateHold reserves amount against the account's available balance. The
// total balance is untouched; only the hold portion grows.
func (s *HoldService) CreateHold(
	ctx context.Context,
	account *models.Account,
	amount decimal.Decimal,
	holdType models.HoldBalanceType,
) (*models.HoldBalance, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, &ServiceError{
			Code:     ErrCodeInvalidAmount,
			Severity: SeverityClient,
			Message:  "hold amount must be greater than 0",
		}
	}

	if account.AvailableBalance().LessThan(amount) {
		return nil, &ServiceError{
			Code:     ErrCodeInsufficientBalance,
			Severity: SeverityClient,
			Message:  "insufficient balance to reserve",
		}
	}

	account.HoldBalance = account.HoldBalance.Add(amount)

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, mapAccountUpdateError(err)
	}

	hold := &models.HoldBalance{
		ID:        uuid.New(),
		AccountID: account.ID,
		Amount:    amount,
		Type:      holdType,
		Status:    models.HoldStatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.holds.Create(ctx, hold); err != nil {
		return nil, &ServiceError{
			Code:     ErrCodeInternalError,
			Severity: SeverityServer,
			Message:  "failed to create hold",
			Err:      err,
		}
	}

	return hold, nil
}

// ConfirmHold commits the reserved debit: the reservation is released and
// the total balance decreases in a single account update. The hold already
// guaranteed the funds, so the reserved amount is spendable here and confirm
// cannot fail for lack of balance.
func (s *HoldService) ConfirmHold(ctx context.Context, account *models.Account, hold *models.HoldBalance) error {
	account.HoldBalance = account.HoldBalance.Sub(hold.Amount)

	if err := s.ledger.Withdraw(ctx, account, hold.Amount); err != nil {
		account.HoldBalance = account.HoldBalance.Add(hold.Amount)
		return err
	}

	if err := s.holds.UpdateStatus(ctx, hold.ID, models.HoldStatusConfirmed); err != nil {
		return &ServiceError{
			Code:     ErrCodeInternalError,
			Severity: SeverityServer,
			Message:  "failed to confirm hold",
			Err:      err,
		}
	}

	hold.Status = models.HoldStatusConfirmed

	return nil
}

// CancelHold releases the reservation. No ledger mutation happens; the
// reserved capacity simply becomes available again.
func (s *HoldService) CancelHold(ctx context.Context, account *models.Account, hold *models.HoldBalance) error {
	account.HoldBalance = account.HoldBalance.Sub(hold.Amount)

	if err := s.accounts.Update(ctx, account); err != nil {
		return mapAccountUpdateError(err)
	}

	if err := s.holds.UpdateStatus(ctx, hold.ID, models.HoldStatusCancelled); err != nil {
		return &ServiceError{
			Code:     ErrCodeInternalError,
			Severity: SeverityServer,
			Message:  "failed to cancel hold",
			Err:      err,
		}
	}

	hold.Status = models.HoldStatusCancelled

	return nil
}

// Hold returns the reservation with the given ID for status inspection
func (s *HoldService) Hold(ctx context.Context, id uuid.UUID) (*models.HoldBalance, error) {
	hold, err := s.holds.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{
				Code:     ErrCodeHoldNotFound,
				Severity: SeverityClient,
				Message:  "hold not found",
				Err:      err,
			}
		}
		return nil, &ServiceError{
			Code:     ErrCodeInternalError,
			Severity: SeverityServer,
			Message:  "failed to load hold",
			Err:      err,
		}
	}

	return hold, nil
}
