package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HoldBalanceType classifies why funds were reserved
type HoldBalanceType string

const (
	HoldTypeChargePayment HoldBalanceType = "CHARGE_PAYMENT"
	HoldTypeChargeRefund  HoldBalanceType = "CHARGE_REFUND"
)

// HoldBalanceStatus represents the lifecycle state of a reservation
type HoldBalanceStatus string

const (
	HoldStatusPending   HoldBalanceStatus = "PENDING"
	HoldStatusConfirmed HoldBalanceStatus = "CONFIRMED"
	HoldStatusCancelled HoldBalanceStatus = "CANCELLED"
)

// HoldBalance is a temporary reservation of funds against an account's
// available balance. It is created PENDING and becomes terminal on confirm
// or cancel; a hold must never outlive the operation that created it.
type HoldBalance struct {
	CreatedAt time.Time         `db:"created_at"`
	UpdatedAt time.Time         `db:"updated_at"`
	Amount    decimal.Decimal   `db:"amount"`
	Type      HoldBalanceType   `db:"type"`
	Status    HoldBalanceStatus `db:"status"`
	ID        uuid.UUID         `db:"id"`
	AccountID uuid.UUID         `db:"account_id"`
}
