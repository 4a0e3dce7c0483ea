package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account holds a user's balances. TotalBalance is the settled money on the
// account; HoldBalance is the portion currently reserved by pending escrow
// holds and not spendable.
type Account struct {
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
	TotalBalance decimal.Decimal `db:"total_balance"`
	HoldBalance  decimal.Decimal `db:"hold_balance"`
	Version      int64           `db:"version"`
	ID           uuid.UUID       `db:"id"`
	UserID       uuid.UUID       `db:"user_id"`
}

// AvailableBalance is the only balance usable for new spends or reservations.
func (a *Account) AvailableBalance() decimal.Decimal {
	return a.TotalBalance.Sub(a.HoldBalance)
}

// User is a directory record for a party that owns an account. Registration
// and credential handling live upstream; the engine only reads these.
type User struct {
	CreatedAt time.Time `db:"created_at"`
	Name      string    `db:"name"`
	CPF       string    `db:"cpf"`
	Email     string    `db:"email"`
	ID        uuid.UUID `db:"id"`
}
