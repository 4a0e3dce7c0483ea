package service

import (
	"context"
	"testing"

	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/benx421/payment-gateway/ledger/internal/repository/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTransactionService_CreateDepositLeg(t *testing.T) {
	mockTxRepo := mocks.NewMockTransactionRepository(t)
	service := NewTransactionService(mockTxRepo)
	ctx := context.Background()

	account := testAccount("100.00", "0")
	amount := decimal.RequireFromString("25.00")

	mockTxRepo.On("Create", ctx, mock.AnythingOfType("*models.Transaction")).Return(nil)

	txn, err := service.CreateDepositLeg(ctx, account, amount, "DEPOSIT_abc")

	require.NoError(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, account.ID, txn.AccountID)
	assert.Equal(t, models.TransactionTypeCredit, txn.Type)
	assert.Equal(t, models.PurposeDeposit, txn.Purpose)
	assert.Equal(t, models.TransactionStatusPending, txn.Status)
	require.NotNil(t, txn.AuthorizationIdentifier)
	assert.Equal(t, "DEPOSIT_abc", *txn.AuthorizationIdentifier)
	assert.Nil(t, txn.CounterpartAccountID)
}

func TestTransactionService_CreateDebitLeg(t *testing.T) {
	mockTxRepo := mocks.NewMockTransactionRepository(t)
	service := NewTransactionService(mockTxRepo)
	ctx := context.Background()

	payer := testAccount("100.00", "25.00")
	payee := testAccount("0", "0")
	hold := &models.HoldBalance{ID: uuid.New(), AccountID: payer.ID}
	chargeID := uuid.New()

	mockTxRepo.On("Create", ctx, mock.AnythingOfType("*models.Transaction")).Return(nil)

	txn, err := service.CreateDebitLeg(ctx, payer, payee, decimal.RequireFromString("25.00"), models.PurposeChargePayment, hold, chargeID)

	require.NoError(t, err)
	assert.Equal(t, payer.ID, txn.AccountID)
	require.NotNil(t, txn.CounterpartAccountID)
	assert.Equal(t, payee.ID, *txn.CounterpartAccountID)
	assert.Equal(t, models.TransactionTypeDebit, txn.Type)
	require.NotNil(t, txn.HoldID)
	assert.Equal(t, hold.ID, *txn.HoldID)
	require.NotNil(t, txn.ChargeID)
	assert.Equal(t, chargeID, *txn.ChargeID)
}

func TestTransactionService_CompleteSuccess(t *testing.T) {
	t.Run("finalizes a pending leg", func(t *testing.T) {
		mockTxRepo := mocks.NewMockTransactionRepository(t)
		service := NewTransactionService(mockTxRepo)
		ctx := context.Background()

		txn := &models.Transaction{ID: uuid.New(), Status: models.TransactionStatusPending}
		mockTxRepo.On("Finalize", ctx, txn.ID, models.TransactionStatusSuccess, (*string)(nil)).Return(nil)

		err := service.CompleteSuccess(ctx, txn)

		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusSuccess, txn.Status)
	})

	t.Run("rejects an already finalized leg", func(t *testing.T) {
		mockTxRepo := mocks.NewMockTransactionRepository(t)
		service := NewTransactionService(mockTxRepo)
		ctx := context.Background()

		txn := &models.Transaction{ID: uuid.New(), Status: models.TransactionStatusSuccess}

		err := service.CompleteSuccess(ctx, txn)

		assert.Error(t, err)
		mockTxRepo.AssertNotCalled(t, "Finalize")
	})
}

func TestTransactionService_CompleteFailed(t *testing.T) {
	t.Run("records the failure detail", func(t *testing.T) {
		mockTxRepo := mocks.NewMockTransactionRepository(t)
		service := NewTransactionService(mockTxRepo)
		ctx := context.Background()

		txn := &models.Transaction{ID: uuid.New(), Status: models.TransactionStatusPending}
		mockTxRepo.On("Finalize", ctx, txn.ID, models.TransactionStatusFailed, mock.AnythingOfType("*string")).Return(nil)

		err := service.CompleteFailed(ctx, txn, "account not found")

		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusFailed, txn.Status)
		require.NotNil(t, txn.ErrorMessage)
		assert.Equal(t, "account not found", *txn.ErrorMessage)
	})

	t.Run("rejects an already finalized leg", func(t *testing.T) {
		mockTxRepo := mocks.NewMockTransactionRepository(t)
		service := NewTransactionService(mockTxRepo)
		ctx := context.Background()

		txn := &models.Transaction{ID: uuid.New(), Status: models.TransactionStatusFailed}

		err := service.CompleteFailed(ctx, txn, "again")

		assert.Error(t, err)
		mockTxRepo.AssertNotCalled(t, "Finalize")
	})
}
