// Package authorizer integrates with the external authorization API that
// must approve deposits, card payments and card refunds before money moves.
package authorizer

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Purpose is the business reason an authorization is requested for
type Purpose string

const (
	PurposeDeposit     Purpose = "DEPOSIT"
	PurposeCardPayment Purpose = "CARD_PAYMENT"
	PurposeCardRefund  Purpose = "CARD_REFUND"
)

// CardDetails carries the card fields required for card purposes
type CardDetails struct {
	Number       string
	CVV          string
	Expiration   string // MM/YYYY
	Installments int
}

// Request is a single authorization attempt
type Request struct {
	CPF        string
	Identifier string
	Amount     decimal.Decimal
	Card       *CardDetails
}

// ErrPurposeNotSupported indicates no strategy handles the requested purpose
var ErrPurposeNotSupported = errors.New("no authorizer strategy for purpose")

// TransportError wraps any transport or protocol failure talking to the
// authorizer API. The gateway never retries; the underlying message is
// preserved for the audit trail.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("authorizer service error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ValidationError indicates the request was rejected locally before any call
// to the authorizer was made
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
