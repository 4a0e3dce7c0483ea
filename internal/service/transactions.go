package service

import (
	"context"
	"fmt"
	"time"

	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/benx421/payment-gateway/ledger/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionService records the audit trail of ledger legs. Every
// balance-affecting operation creates exactly one PENDING leg per account
// touched before any side effect runs, and finalizes each leg exactly once.
type TransactionService struct {
	transactions repository.TransactionRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactions repository.TransactionRepository) *TransactionService {
	return &TransactionService{transactions: transactions}
}

// CreateDepositLeg records the credit leg of a self-deposit
func (s *TransactionService) CreateDepositLeg(
	ctx context.Context,
	account *models.Account,
	amount decimal.Decimal,
	authorizationIdentifier string,
) (*models.Transaction, error) {
	txn := &models.Transaction{
		ID:                      uuid.New(),
		AccountID:               account.ID,
		Amount:                  amount,
		Type:                    models.TransactionTypeCredit,
		Purpose:                 models.PurposeDeposit,
		Status:                  models.TransactionStatusPending,
		AuthorizationIdentifier: &authorizationIdentifier,
		CreatedAt:               time.Now(),
	}

	if err := s.transactions.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record deposit leg: %w", err)
	}

	return txn, nil
}

// CreateDebitLeg records the debit side of a charge payment or refund. The
// hold backing the debit is referenced for the audit trail.
func (s *TransactionService) CreateDebitLeg(
	ctx context.Context,
	party *models.Account,
	counterpart *models.Account,
	amount decimal.Decimal,
	purpose models.TransactionPurpose,
	hold *models.HoldBalance,
	chargeID uuid.UUID,
) (*models.Transaction, error) {
	txn := &models.Transaction{
		ID:                   uuid.New(),
		AccountID:            party.ID,
		CounterpartAccountID: &counterpart.ID,
		Amount:               amount,
		Type:                 models.TransactionTypeDebit,
		Purpose:              purpose,
		Status:               models.TransactionStatusPending,
		HoldID:               &hold.ID,
		ChargeID:             &chargeID,
		CreatedAt:            time.Now(),
	}

	if err := s.transactions.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record debit leg: %w", err)
	}

	return txn, nil
}

// CreateCreditLeg records the credit side of a charge payment or refund
func (s *TransactionService) CreateCreditLeg(
	ctx context.Context,
	party *models.Account,
	counterpart *models.Account,
	amount decimal.Decimal,
	purpose models.TransactionPurpose,
	authorizationIdentifier *string,
	chargeID uuid.UUID,
) (*models.Transaction, error) {
	txn := &models.Transaction{
		ID:                      uuid.New(),
		AccountID:               party.ID,
		CounterpartAccountID:    &counterpart.ID,
		Amount:                  amount,
		Type:                    models.TransactionTypeCredit,
		Purpose:                 purpose,
		Status:                  models.TransactionStatusPending,
		AuthorizationIdentifier: authorizationIdentifier,
		ChargeID:                &chargeID,
		CreatedAt:               time.Now(),
	}

	if err := s.transactions.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record credit leg: %w", err)
	}

	return txn, nil
}

// CompleteSuccess finalizes a pending leg as SUCCESS. Finalizing only flips
// the status; balance effects happen in the ledger calls, so a repeated
// finalize can never double-apply money and is rejected instead.
func (s *TransactionService) CompleteSuccess(ctx context.Context, txn *models.Transaction) error {
	if txn.Final() {
		return fmt.Errorf("transaction %s already finalized as %s", txn.ID, txn.Status)
	}

	if err := s.transactions.Finalize(ctx, txn.ID, models.TransactionStatusSuccess, nil); err != nil {
		return fmt.Errorf("failed to complete transaction: %w", err)
	}

	txn.Status = models.TransactionStatusSuccess

	return nil
}

// CompleteFailed finalizes a pending leg as FAILED with the failure detail
func (s *TransactionService) CompleteFailed(ctx context.Context, txn *models.Transaction, message string) error {
	if txn.Final() {
		return fmt.Errorf("transaction %s already finalized as %s", txn.ID, txn.Status)
	}

	if err := s.transactions.Finalize(ctx, txn.ID, models.TransactionStatusFailed, &message); err != nil {
		return fmt.Errorf("failed to fail transaction: %w", err)
	}

	txn.Status = models.TransactionStatusFailed
	txn.ErrorMessage = &message

	return nil
}
