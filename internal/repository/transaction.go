package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/benx421/payment-gateway/ledger/internal/db"
	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/google/uuid"
)

// TransactionRepository defines the interface for ledger-leg data access
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	FindByChargeID(ctx context.Context, chargeID uuid.UUID) ([]*models.Transaction, error)
	Finalize(ctx context.Context, id uuid.UUID, status models.TransactionStatus, errorMessage *string) error
}

type transactionRepository struct {
	q db.Queryer
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(q db.Queryer) TransactionRepository {
	return &transactionRepository{q: q}
}

const transactionColumns = `id, account_id, counterpart_account_id, amount, type, purpose, status,
	authorization_identifier, hold_id, charge_id, error_message, created_at, updated_at`

// Create persists a new ledger leg
func (r *transactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, account_id, counterpart_account_id, amount, type, purpose,
			status, authorization_identifier, hold_id, charge_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if _, err := r.q.ExecContext(ctx, query,
		txn.ID,
		txn.AccountID,
		txn.CounterpartAccountID,
		txn.Amount,
		txn.Type,
		txn.Purpose,
		txn.Status,
		txn.AuthorizationIdentifier,
		txn.HoldID,
		txn.ChargeID,
	); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// FindByID retrieves a ledger leg by its UUID
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	var txn models.Transaction
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&txn.ID,
		&txn.AccountID,
		&txn.CounterpartAccountID,
		&txn.Amount,
		&txn.Type,
		&txn.Purpose,
		&txn.Status,
		&txn.AuthorizationIdentifier,
		&txn.HoldID,
		&txn.ChargeID,
		&txn.ErrorMessage,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	return &txn, nil
}

// FindByChargeID retrieves every ledger leg recorded for a charge
func (r *transactionRepository) FindByChargeID(ctx context.Context, chargeID uuid.UUID) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE charge_id = $1 ORDER BY created_at`

	rows, err := r.q.QueryContext(ctx, query, chargeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by charge: %w", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		var txn models.Transaction
		if err := rows.Scan(
			&txn.ID,
			&txn.AccountID,
			&txn.CounterpartAccountID,
			&txn.Amount,
			&txn.Type,
			&txn.Purpose,
			&txn.Status,
			&txn.AuthorizationIdentifier,
			&txn.HoldID,
			&txn.ChargeID,
			&txn.ErrorMessage,
			&txn.CreatedAt,
			&txn.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, &txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}

// Finalize moves a PENDING ledger leg to SUCCESS or FAILED. The status guard
// in the WHERE clause makes finalization single-shot: a second call matches
// zero rows and reports not found instead of overwriting the outcome.
func (r *transactionRepository) Finalize(ctx context.Context, id uuid.UUID, status models.TransactionStatus, errorMessage *string) error {
	query := `
		UPDATE transactions
		SET status = $2, error_message = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
	`

	result, err := r.q.ExecContext(ctx, query, id, status, errorMessage)
	if err != nil {
		return fmt.Errorf("failed to finalize transaction: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("pending transaction not found: %w", models.ErrNotFound)
	}

	return nil
}
