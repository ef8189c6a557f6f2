package errors

import "errors"

var (
	// ErrConfigUnavailable means the merchant configuration could not be
	// fetched. Resolution fails closed on this.
	ErrConfigUnavailable = errors.New("merchant configuration unavailable")

	// ErrLedgerUnavailable means the booking ledger could not be fetched.
	// Availability cannot be verified, callers must surface a retry.
	ErrLedgerUnavailable = errors.New("booking ledger unavailable")

	ErrInvalidDate = errors.New("invalid date format")
)
