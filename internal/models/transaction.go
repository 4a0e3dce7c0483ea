package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a ledger leg
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "DEBIT"
	TransactionTypeCredit TransactionType = "CREDIT"
)

// TransactionPurpose is the business reason behind a ledger leg
type TransactionPurpose string

const (
	PurposeDeposit       TransactionPurpose = "DEPOSIT"
	PurposeChargePayment TransactionPurpose = "CHARGE_PAYMENT"
	PurposeChargeRefund  TransactionPurpose = "CHARGE_REFUND"
)

// TransactionStatus represents the outcome of a ledger leg
type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "PENDING"
	TransactionStatusSuccess TransactionStatus = "SUCCESS"
	TransactionStatusFailed  TransactionStatus = "FAILED"
)

// Transaction is one ledger leg: one account's side of a money movement.
// Every balance-affecting operation records exactly one leg per account
// touched, created PENDING before any side effect and finalized exactly once.
type Transaction struct {
	CreatedAt               time.Time          `db:"created_at"`
	UpdatedAt               time.Time          `db:"updated_at"`
	Amount                  decimal.Decimal    `db:"amount"`
	AuthorizationIdentifier *string            `db:"authorization_identifier"`
	ErrorMessage            *string            `db:"error_message"`
	CounterpartAccountID    *uuid.UUID         `db:"counterpart_account_id"`
	HoldID                  *uuid.UUID         `db:"hold_id"`
	ChargeID                *uuid.UUID         `db:"charge_id"`
	Type                    TransactionType    `db:"type"`
	Purpose                 TransactionPurpose `db:"purpose"`
	Status                  TransactionStatus  `db:"status"`
	ID                      uuid.UUID          `db:"id"`
	AccountID               uuid.UUID          `db:"account_id"`
}

// Final reports whether the transaction has already been finalized.
func (t *Transaction) Final() bool {
	return t.Status != TransactionStatusPending
}
