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

// UserRepository is the read-only directory of parties. User lifecycle is
// owned by the surrounding application; the engine only resolves identities.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByCPF(ctx context.Context, cpf string) (*models.User, error)
}

type userRepository struct {
	q db.Queryer
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(q db.Queryer) UserRepository {
	return &userRepository{q: q}
}

// FindByID retrieves a user by its UUID
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT id, name, cpf, email, created_at FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// FindByCPF retrieves a user by its CPF
func (r *userRepository) FindByCPF(ctx context.Context, cpf string) (*models.User, error) {
	query := `SELECT id, name, cpf, email, created_at FROM users WHERE cpf = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, cpf))
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.CPF,
		&user.Email,
		&user.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}
