package models

import "errors"

// Domain errors that can be returned by repositories
var (
	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("not found")

	// ErrStaleAccount indicates an account update lost an optimistic
	// concurrency race and the caller is working from outdated balances
	ErrStaleAccount = errors.New("stale account version")

	// ErrDuplicatePayment indicates a charge payment record already exists
	// for the charge
	ErrDuplicatePayment = errors.New("duplicate charge payment")
)
