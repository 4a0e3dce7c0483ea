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

// ChargeRepository defines the interface for charge data access
type ChargeRepository interface {
	Create(ctx context.Context, charge *models.Charge) error
	FindByIdentifier(ctx context.Context, identifier string) (*models.Charge, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ChargeStatus, errorMessage *string) error
	ListByOriginator(ctx context.Context, userID uuid.UUID, statuses []models.ChargeStatus) ([]*models.Charge, error)
	ListByDestination(ctx context.Context, userID uuid.UUID, statuses []models.ChargeStatus) ([]*models.Charge, error)
}

type chargeRepository struct {
	q db.Queryer
}

// NewChargeRepository creates a new ChargeRepository
func NewChargeRepository(q db.Queryer) ChargeRepository {
	return &chargeRepository{q: q}
}

const chargeColumns = `id, identifier, originator_user_id, destination_user_id, amount,
	description, status, error_message, created_at, updated_at`

// Create persists a new charge
func (r *chargeRepository) Create(ctx context.Context, charge *models.Charge) error {
	query := `
		INSERT INTO charges (id, identifier, originator_user_id, destination_user_id,
			amount, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := r.q.ExecContext(ctx, query,
		charge.ID,
		charge.Identifier,
		charge.OriginatorUserID,
		charge.DestinationUserID,
		charge.Amount,
		charge.Description,
		charge.Status,
	); err != nil {
		return fmt.Errorf("failed to create charge: %w", err)
	}

	return nil
}

// FindByIdentifier retrieves a charge by its external-facing identifier
func (r *chargeRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.Charge, error) {
	query := `SELECT ` + chargeColumns + ` FROM charges WHERE identifier = $1`

	charge, err := scanCharge(r.q.QueryRowContext(ctx, query, identifier))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("charge not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find charge: %w", err)
	}

	return charge, nil
}

// UpdateStatus records the charge's new lifecycle state and error message
func (r *chargeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ChargeStatus, errorMessage *string) error {
	query := `
		UPDATE charges
		SET status = $2, error_message = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.q.ExecContext(ctx, query, id, status, errorMessage)
	if err != nil {
		return fmt.Errorf("failed to update charge status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("charge not found: %w", models.ErrNotFound)
	}

	return nil
}

// ListByOriginator returns the charges a user has sent, filtered by status
func (r *chargeRepository) ListByOriginator(ctx context.Context, userID uuid.UUID, statuses []models.ChargeStatus) ([]*models.Charge, error) {
	query := `SELECT ` + chargeColumns + `
		FROM charges
		WHERE originator_user_id = $1 AND status = ANY($2)
		ORDER BY created_at DESC`
	return r.list(ctx, query, userID, statuses)
}

// ListByDestination returns the charges addressed to a user, filtered by status
func (r *chargeRepository) ListByDestination(ctx context.Context, userID uuid.UUID, statuses []models.ChargeStatus) ([]*models.Charge, error) {
	query := `SELECT ` + chargeColumns + `
		FROM charges
		WHERE destination_user_id = $1 AND status = ANY($2)
		ORDER BY created_at DESC`
	return r.list(ctx, query, userID, statuses)
}

func (r *chargeRepository) list(ctx context.Context, query string, userID uuid.UUID, statuses []models.ChargeStatus) ([]*models.Charge, error) {
	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	rows, err := r.q.QueryContext(ctx, query, userID, pq.Array(statusStrings))
	if err != nil {
		return nil, fmt.Errorf("failed to query charges: %w", err)
	}
	defer rows.Close()

	var charges []*models.Charge
	for rows.Next() {
		charge, err := scanCharge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan charge: %w", err)
		}
		charges = append(charges, charge)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate charges: %w", err)
	}

	return charges, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCharge(row rowScanner) (*models.Charge, error) {
	var charge models.Charge
	err := row.Scan(
		&charge.ID,
		&charge.Identifier,
		&charge.OriginatorUserID,
		&charge.DestinationUserID,
		&charge.Amount,
		&charge.Description,
		&charge.Status,
		&charge.ErrorMessage,
		&charge.CreatedAt,
		&charge.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &charge, nil
}
