package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChargeStatus represents the lifecycle state of a charge.
//
// PENDING → PAID | PAYMENT_FAILED | CANCELLED
// PAID    → CANCELLED | CANCELLED_FAILED
//
// PAYMENT_FAILED, CANCELLED and CANCELLED_FAILED are terminal.
type ChargeStatus string

const (
	ChargeStatusPending         ChargeStatus = "PENDING"
	ChargeStatusPaid            ChargeStatus = "PAID"
	ChargeStatusPaymentFailed   ChargeStatus = "PAYMENT_FAILED"
	ChargeStatusCancelled       ChargeStatus = "CANCELLED"
	ChargeStatusCancelledFailed ChargeStatus = "CANCELLED_FAILED"
)

// PaymentMethod selects how a charge is settled
type PaymentMethod string

const (
	PaymentMethodAccountBalance PaymentMethod = "ACCOUNT_BALANCE"
	PaymentMethodCreditCard     PaymentMethod = "CREDIT_CARD"
)

// Charge is a request for one party (destination) to pay another
// (originator). It tracks its own lifecycle independent of the payment
// method used to settle it.
type Charge struct {
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
	Identifier        string          `db:"identifier"`
	Description       string          `db:"description"`
	ErrorMessage      *string         `db:"error_message"`
	Amount            decimal.Decimal `db:"amount"`
	Status            ChargeStatus    `db:"status"`
	ID                uuid.UUID       `db:"id"`
	OriginatorUserID  uuid.UUID       `db:"originator_user_id"`
	DestinationUserID uuid.UUID       `db:"destination_user_id"`
}

// ChargePayment records how a charge was settled. At most one per charge.
type ChargePayment struct {
	CreatedAt               time.Time     `db:"created_at"`
	UpdatedAt               time.Time     `db:"updated_at"`
	PaidAt                  *time.Time    `db:"paid_at"`
	CancelledAt             *time.Time    `db:"cancelled_at"`
	AuthorizationIdentifier *string       `db:"authorization_identifier"`
	CardLastFour            *string       `db:"card_last_four"`
	PaymentMethod           PaymentMethod `db:"payment_method"`
	ID                      uuid.UUID     `db:"id"`
	ChargeID                uuid.UUID     `db:"charge_id"`
}
