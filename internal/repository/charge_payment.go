package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/benx421/payment-gateway/ledger/internal/db"
	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ChargePaymentRepository defines the interface for charge settlement records
type ChargePaymentRepository interface {
	Create(ctx context.Context, payment *models.ChargePayment) error
	FindByChargeID(ctx context.Context, chargeID uuid.UUID) (*models.ChargePayment, error)
	Update(ctx context.Context, payment *models.ChargePayment) error
}

type chargePaymentRepository struct {
	q db.Queryer
}

// NewChargePaymentRepository creates a new ChargePaymentRepository
func NewChargePaymentRepository(q db.Queryer) ChargePaymentRepository {
	return &chargePaymentRepository{q: q}
}

// Create persists a new settlement record. The unique constraint on
// charge_id enforces the at-most-one payment per charge ownership rule.
func (r *chargePaymentRepository) Create(ctx context.Context, payment *models.ChargePayment) error {
	query := `
		INSERT INTO charge_payments (id, charge_id, payment_method,
			authorization_identifier, card_last_four, paid_at, cancelled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := r.q.ExecContext(ctx, query,
		payment.ID,
		payment.ChargeID,
		payment.PaymentMethod,
		payment.AuthorizationIdentifier,
		payment.CardLastFour,
		payment.PaidAt,
		payment.CancelledAt,
	); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("charge already settled: %w", models.ErrDuplicatePayment)
		}
		return fmt.Errorf("failed to create charge payment: %w", err)
	}

	return nil
}

// FindByChargeID retrieves the settlement record for a charge
func (r *chargePaymentRepository) FindByChargeID(ctx context.Context, chargeID uuid.UUID) (*models.ChargePayment, error) {
	query := `
		SELECT id, charge_id, payment_method, authorization_identifier,
		       card_last_four, paid_at, cancelled_at, created_at, updated_at
		FROM charge_payments
		WHERE charge_id = $1
	`

	var payment models.ChargePayment
	err := r.q.QueryRowContext(ctx, query, chargeID).Scan(
		&payment.ID,
		&payment.ChargeID,
		&payment.PaymentMethod,
		&payment.AuthorizationIdentifier,
		&payment.CardLastFour,
		&payment.PaidAt,
		&payment.CancelledAt,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("charge payment not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find charge payment: %w", err)
	}

	return &payment, nil
}

// Update persists settlement timestamps after a refund
func (r *chargePaymentRepository) Update(ctx context.Context, payment *models.ChargePayment) error {
	query := `
		UPDATE charge_payments
		SET paid_at = $2, cancelled_at = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.q.ExecContext(ctx, query, payment.ID, payment.PaidAt, payment.CancelledAt)
	if err != nil {
		return fmt.Errorf("failed to update charge payment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("charge payment not found: %w", models.ErrNotFound)
	}

	return nil
}
