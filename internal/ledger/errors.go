// Package ledger defines the coded error taxonomy shared by every
// ledger operation. The numeric codes are part of the public contract
// and must never change.
package ledger

import (
	"errors"
	"fmt"
)

// Error is a ledger failure with a stable numeric code.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("ledger error %d: %s", e.Code, e.Message)
}

var (
	ErrUnauthorized        = &Error{Code: 100, Message: "caller is not authorized"}
	ErrAccountExists       = &Error{Code: 101, Message: "account already exists"}
	ErrAccountNotFound     = &Error{Code: 102, Message: "account not found"}
	ErrInsufficientBalance = &Error{Code: 103, Message: "insufficient balance"}
	ErrInvalidAmount       = &Error{Code: 104, Message: "invalid amount"}
	ErrCreditDeclined      = &Error{Code: 106, Message: "credit declined"}
	ErrInsufficientCredit  = &Error{Code: 107, Message: "insufficient credit"}
	ErrInvalidPaymentPlan  = &Error{Code: 109, Message: "invalid payment plan"}
)

// CodeOf extracts the numeric code from err, if it carries one.
func CodeOf(err error) (int, bool) {
	var le *Error
	if errors.As(err, &le) {
		return le.Code, true
	}
	return 0, false
}
