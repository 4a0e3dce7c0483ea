// Package repository provides data access implementations for the ledger engine.
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

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
}

// accountRepository implements AccountRepository
type accountRepository struct {
	q db.Queryer
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(q db.Queryer) AccountRepository {
	return &accountRepository{q: q}
}

const accountColumns = `id, user_id, total_balance, hold_balance, version, created_at, updated_at`

// Create persists a new account
func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, user_id, total_balance, hold_balance, version)
		VALUES ($1, $2, $3, $4, 0)
	`

	if _, err := r.q.ExecContext(ctx, query,
		account.ID,
		account.UserID,
		account.TotalBalance,
		account.HoldBalance,
	); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// FindByID retrieves an account by its UUID
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// FindByUserID retrieves the account owned by the given user
func (r *accountRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, userID))
}

// Update persists the account's balances using an optimistic version check.
// A concurrent writer that got there first leaves zero rows matched, which
// surfaces as models.ErrStaleAccount; the caller's view of the balances is
// outdated and must not be committed.
func (r *accountRepository) Update(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET total_balance = $3,
		    hold_balance = $4,
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $1 AND version = $2
	`

	result, err := r.q.ExecContext(ctx, query,
		account.ID,
		account.Version,
		account.TotalBalance,
		account.HoldBalance,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrStaleAccount
	}

	account.Version++

	return nil
}

func (r *accountRepository) scanOne(row *sql.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.TotalBalance,
		&account.HoldBalance,
		&account.Version,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	return &account, nil
}
