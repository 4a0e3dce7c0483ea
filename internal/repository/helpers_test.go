package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/benx421/payment-gateway/ledger/internal/config"
	"github.com/benx421/payment-gateway/ledger/internal/db"
	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to the database configured through the environment.
// Tests are skipped when no database is reachable so the unit suite stays
// runnable without infrastructure.
func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := sqlDB.PingContext(context.Background()); err != nil {
		_ = sqlDB.Close() //nolint:errcheck // skipping anyway
		t.Skipf("skipping: test database unreachable: %v", err)
	}

	database := db.NewTestDB(sqlDB)

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		truncateTables(t, database)
		_ = database.Close() //nolint:errcheck // test cleanup
	})

	return database
}

func truncateTables(t *testing.T, database *db.DB) {
	t.Helper()

	_, err := database.ExecContext(context.Background(), `
		TRUNCATE idempotency_keys, transactions, charge_payments, charges,
			hold_balances, accounts, users CASCADE
	`)
	if err != nil {
		t.Logf("failed to truncate tables: %v", err)
	}
}

// seedUser inserts a user row directly; the user directory has no write API
func seedUser(t *testing.T, database *db.DB, cpf string) *models.User {
	t.Helper()

	user := &models.User{
		ID:    uuid.New(),
		Name:  "Test User " + cpf,
		CPF:   cpf,
		Email: cpf + "@example.com",
	}

	_, err := database.ExecContext(context.Background(),
		`INSERT INTO users (id, name, cpf, email) VALUES ($1, $2, $3, $4)`,
		user.ID, user.Name, user.CPF, user.Email,
	)
	require.NoError(t, err, "failed to seed user")

	return user
}

func seedCharge(t *testing.T, database *db.DB, originatorID, destinationID uuid.UUID, amount string) *models.Charge {
	t.Helper()

	charge := &models.Charge{
		ID:                uuid.New(),
		Identifier:        "chg_" + uuid.NewString(),
		OriginatorUserID:  originatorID,
		DestinationUserID: destinationID,
		Amount:            decimal.RequireFromString(amount),
		Description:       "test charge",
		Status:            models.ChargeStatusPending,
	}

	repo := NewChargeRepository(database)
	require.NoError(t, repo.Create(context.Background(), charge), "failed to seed charge")

	return charge
}

func seedAccount(t *testing.T, database *db.DB, userID uuid.UUID, total string) *models.Account {
	t.Helper()

	account := &models.Account{
		ID:           uuid.New(),
		UserID:       userID,
		TotalBalance: decimal.RequireFromString(total),
		HoldBalance:  decimal.Zero,
	}

	repo := NewAccountRepository(database)
	require.NoError(t, repo.Create(context.Background(), account), "failed to seed account")

	return account
}
