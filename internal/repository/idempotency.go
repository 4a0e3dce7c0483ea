package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/benx421/payment-gateway/ledger/internal/db"
	"github.com/benx421/payment-gateway/ledger/internal/models"
)

// IdempotencyRepository tracks processed requests so a retried mutating call
// replays its original response instead of settling twice
type IdempotencyRepository interface {
	Find(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error)
	Save(ctx context.Context, record *models.IdempotencyKey) error
}

type idempotencyRepository struct {
	q db.Queryer
}

// NewIdempotencyRepository creates a new IdempotencyRepository
func NewIdempotencyRepository(q db.Queryer) IdempotencyRepository {
	return &idempotencyRepository{q: q}
}

// Find retrieves a stored response for the key and path, if any
func (r *idempotencyRepository) Find(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error) {
	query := `
		SELECT key, request_path, response_status, response_body, created_at
		FROM idempotency_keys
		WHERE key = $1 AND request_path = $2
	`

	var record models.IdempotencyKey
	err := r.q.QueryRowContext(ctx, query, key, requestPath).Scan(
		&record.Key,
		&record.RequestPath,
		&record.ResponseStatus,
		&record.ResponseBody,
		&record.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("idempotency key not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find idempotency key: %w", err)
	}

	return &record, nil
}

// Save stores the response for a processed request. A concurrent duplicate
// insert is ignored; the first writer wins and later lookups replay it.
func (r *idempotencyRepository) Save(ctx context.Context, record *models.IdempotencyKey) error {
	query := `
		INSERT INTO idempotency_keys (key, request_path, response_status, response_body)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key, request_path) DO NOTHING
	`

	if _, err := r.q.ExecContext(ctx, query,
		record.Key,
		record.RequestPath,
		record.ResponseStatus,
		record.ResponseBody,
	); err != nil {
		return fmt.Errorf("failed to save idempotency key: %w", err)
	}

	return nil
}
