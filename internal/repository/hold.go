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

// HoldBalanceRepository defines the interface for escrow hold data access
type HoldBalanceRepository interface {
	Create(ctx context.Context, hold *models.HoldBalance) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.HoldBalance, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.HoldBalanceStatus) error
}

type holdBalanceRepository struct {
	q db.Queryer
}

// NewHoldBalanceRepository creates a new HoldBalanceRepository
func NewHoldBalanceRepository(q db.Queryer) HoldBalanceRepository {
	return &holdBalanceRepository{q: q}
}

// Create persists a new hold
func (r *holdBalanceRepository) Create(ctx context.Context, hold *models.HoldBalance) error {
	query := `
		INSERT INTO hold_balances (id, account_id, amount, type, status)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := r.q.ExecContext(ctx, query,
		hold.ID,
		hold.AccountID,
		hold.Amount,
		hold.Type,
		hold.Status,
	); err != nil {
		return fmt.Errorf("failed to create hold: %w", err)
	}

	return nil
}

// FindByID retrieves a hold by its UUID
func (r *holdBalanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.HoldBalance, error) {
	query := `
		SELECT id, account_id, amount, type, status, created_at, updated_at
		FROM hold_balances
		WHERE id = $1
	`

	var hold models.HoldBalance
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&hold.ID,
		&hold.AccountID,
		&hold.Amount,
		&hold.Type,
		&hold.Status,
		&hold.CreatedAt,
		&hold.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("hold not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find hold: %w", err)
	}

	return &hold, nil
}

// UpdateStatus moves a hold to a terminal status
func (r *holdBalanceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.HoldBalanceStatus) error {
	query := `
		UPDATE hold_balances
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.q.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update hold status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("hold not found: %w", models.ErrNotFound)
	}

	return nil
}
