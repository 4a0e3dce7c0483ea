package service

import (
	"errors"
	"fmt"
)

// Severity distinguishes failures the caller caused from failures of the
// engine or its dependencies
type Severity string

const (
	SeverityClient Severity = "client"
	SeverityServer Severity = "server"
)

// ServiceError represents a business logic error with a code and severity
type ServiceError struct {
	Err      error
	Message  string
	Code     string
	Severity Severity
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeInvalidAmount             = "invalid_amount"
	ErrCodeInsufficientBalance       = "insufficient_balance"
	ErrCodeAccountNotFound           = "account_not_found"
	ErrCodeUserNotFound              = "user_not_found"
	ErrCodeAuthorizationFailed       = "authorization_failed"
	ErrCodeAuthorizerNotFound        = "authorizer_not_found"
	ErrCodeAuthorizerError           = "authorizer_error"
	ErrCodeInvalidCardDetails        = "invalid_card_details"
	ErrCodeChargeNotFound            = "charge_not_found"
	ErrCodeHoldNotFound              = "hold_not_found"
	ErrCodeChargeNotAllowedToPay     = "charge_not_allowed_to_pay"
	ErrCodeChargeNotAllowedToCancel  = "charge_not_allowed_to_cancel"
	ErrCodeChargeSameAsOriginator    = "charge_destination_same_as_originator"
	ErrCodePaymentMethodNotSupported = "payment_method_not_supported"
	ErrCodeChargePaymentError        = "charge_payment_error"
	ErrCodeChargeCancelError         = "charge_cancel_error"
	ErrCodeStaleAccount              = "stale_account"
	ErrCodeInternalError             = "internal_error"
)

// failureMessage extracts the human-readable detail recorded on audit rows.
// Typed failures contribute their message; anything else contributes its
// full error string.
func failureMessage(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return err.Error()
}

// isBusinessError reports whether err is a typed business failure that must
// bubble to the caller unchanged
func isBusinessError(err error) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr)
}
