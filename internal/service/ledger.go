package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/benx421/payment-gateway/ledger/internal/authorizer"
	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/benx421/payment-gateway/ledger/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService applies deposits and withdrawals to account balances. It
// never records audit legs itself; callers wrap each mutation in its own
// transaction leg.
type LedgerService struct {
	accounts     repository.AccountRepository
	users        repository.UserRepository
	transactions *TransactionService
	gateway      AuthorizerGateway
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	accounts repository.AccountRepository,
	users repository.UserRepository,
	transactions *TransactionService,
	gateway AuthorizerGateway,
) *LedgerService {
	return &LedgerService{
		accounts:     accounts,
		users:        users,
		transactions: transactions,
		gateway:      gateway,
	}
}

// Withdraw decreases the account's total balance. The available balance
// check runs against the caller's loaded view; the optimistic version update
// rejects the write if a concurrent operation moved the balances first.
func (s *LedgerService) Withdraw(ctx context.Context, account *models.Account, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return &ServiceError{
			Code:     ErrCodeInvalidAmount,
			Severity: SeverityClient,
			Message:  "withdrawal amount must be greater than 0",
		}
	}

	if account.AvailableBalance().LessThan(amount) {
		return &ServiceError{
			Code:     ErrCodeInsufficientBalance,
			Severity: SeverityClient,
			Message:  "insufficient balance",
		}
	}

	account.TotalBalance = account.TotalBalance.Sub(amount)

	if err := s.accounts.Update(ctx, account); err != nil {
		account.TotalBalance = account.TotalBalance.Add(amount)
		return mapAccountUpdateError(err)
	}

	return nil
}

// Deposit increases the account's total balance
func (s *LedgerService) Deposit(ctx context.Context, account *models.Account, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return &ServiceError{
			Code:     ErrCodeInvalidAmount,
			Severity: SeverityClient,
			Message:  "deposit amount must be greater than 0",
		}
	}

	account.TotalBalance = account.TotalBalance.Add(amount)

	if err := s.accounts.Update(ctx, account); err != nil {
		account.TotalBalance = account.TotalBalance.Sub(amount)
		return mapAccountUpdateError(err)
	}

	return nil
}

// SelfDeposit credits a user's own account after the external authorizer
// approves the deposit. The credit leg is created before the authorizer is
// called and finalized exactly once whatever the outcome.
func (s *LedgerService) SelfDeposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, &ServiceError{
			Code:     ErrCodeInvalidAmount,
			Severity: SeverityClient,
			Message:  "deposit amount must be greater than 0",
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, &ServiceError{
			Code:     ErrCodeUserNotFound,
			Severity: SeverityClient,
			Message:  "user not found",
			Err:      err,
		}
	}

	account, err := s.accounts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, &ServiceError{
			Code:     ErrCodeAccountNotFound,
			Severity: SeverityClient,
			Message:  "account not found",
			Err:      err,
		}
	}

	identifier := fmt.Sprintf("%s_%s", authorizer.PurposeDeposit, uuid.New())

	txn, err := s.transactions.CreateDepositLeg(ctx, account, amount, identifier)
	if err != nil {
		return nil, &ServiceError{
			Code:     ErrCodeInternalError,
			Severity: SeverityServer,
			Message:  "failed to record deposit",
			Err:      err,
		}
	}

	authorized, err := s.gateway.Authorize(ctx, authorizer.PurposeDeposit, authorizer.Request{
		CPF:        user.CPF,
		Identifier: identifier,
		Amount:     amount,
	})
	if err != nil {
		authErr := mapAuthorizerError(err)
		_ = s.transactions.CompleteFailed(ctx, txn, failureMessage(authErr)) //nolint:errcheck // leg failure recording is best effort here
		return nil, authErr
	}

	if !authorized {
		declineErr := &ServiceError{
			Code:     ErrCodeAuthorizationFailed,
			Severity: SeverityClient,
			Message:  "deposit not authorized",
		}
		if err := s.transactions.CompleteFailed(ctx, txn, declineErr.Message); err != nil {
			return nil, &ServiceError{
				Code:     ErrCodeInternalError,
				Severity: SeverityServer,
				Message:  "failed to record deposit failure",
				Err:      err,
			}
		}
		return nil, declineErr
	}

	if err := s.Deposit(ctx, account, amount); err != nil {
		_ = s.transactions.CompleteFailed(ctx, txn, failureMessage(err)) //nolint:errcheck // leg failure recording is best effort here
		return nil, err
	}

	if err := s.transactions.CompleteSuccess(ctx, txn); err != nil {
		return nil, &ServiceError{
			Code:     ErrCodeInternalError,
			Severity: SeverityServer,
			Message:  "failed to finalize deposit",
			Err:      err,
		}
	}

	return txn, nil
}

// Balance returns the account owned by the given user
func (s *LedgerService) Balance(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	account, err := s.accounts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, &ServiceError{
			Code:     ErrCodeAccountNotFound,
			Severity: SeverityClient,
			Message:  "account not found",
			Err:      err,
		}
	}

	return account, nil
}

func mapAccountUpdateError(err error) error {
	if errors.Is(err, models.ErrStaleAccount) {
		return &ServiceError{
			Code:     ErrCodeStaleAccount,
			Severity: SeverityClient,
			Message:  "account was modified concurrently",
			Err:      err,
		}
	}

	return &ServiceError{
		Code:     ErrCodeInternalError,
		Severity: SeverityServer,
		Message:  "failed to persist account",
		Err:      err,
	}
}

// mapAuthorizerError converts authorizer package failures into the engine's
// error taxonomy
func mapAuthorizerError(err error) error {
	var validationErr *authorizer.ValidationError
	if errors.As(err, &validationErr) {
		return &ServiceError{
			Code:     ErrCodeInvalidCardDetails,
			Severity: SeverityClient,
			Message:  validationErr.Message,
			Err:      err,
		}
	}

	if errors.Is(err, authorizer.ErrPurposeNotSupported) {
		return &ServiceError{
			Code:     ErrCodeAuthorizerNotFound,
			Severity: SeverityServer,
			Message:  "no authorizer available for this operation",
			Err:      err,
		}
	}

	return &ServiceError{
		Code:     ErrCodeAuthorizerError,
		Severity: SeverityServer,
		Message:  fmt.Sprintf("authorizer unavailable: %v", err),
		Err:      err,
	}
}
