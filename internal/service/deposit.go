package service

import (
	"context"
	"database/sql"

	"github.com/benx421/payment-gateway/ledger/internal/db"
	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/benx421/payment-gateway/ledger/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepositService exposes account-facing operations over the connection pool.
// A self-deposit runs inside a single database transaction so the credit leg
// and the balance update commit together; a declined or failed deposit rolls
// both back.
type DepositService struct {
	db      *db.DB
	gateway AuthorizerGateway
}

// NewDepositService creates a new DepositService
func NewDepositService(database *db.DB, gateway AuthorizerGateway) *DepositService {
	return &DepositService{
		db:      database,
		gateway: gateway,
	}
}

// SelfDeposit credits the user's own account after authorizer approval
func (s *DepositService) SelfDeposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, beginTxError(err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	txn, err := s.ledgerFor(tx).SelfDeposit(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, commitTxError(err)
	}

	return txn, nil
}

// Balance returns the account owned by the given user
func (s *DepositService) Balance(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	return s.ledgerFor(s.db).Balance(ctx, userID)
}

// ledgerFor builds the ledger over the given query surface
func (s *DepositService) ledgerFor(q db.Queryer) *LedgerService {
	accounts := repository.NewAccountRepository(q)
	users := repository.NewUserRepository(q)
	transactions := NewTransactionService(repository.NewTransactionRepository(q))

	return NewLedgerService(accounts, users, transactions, s.gateway)
}
