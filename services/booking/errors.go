package booking

import (
	"errors"
	"fmt"
)

// Error codes for booking failures.
const (
	CodeConfig            = "configError"
	CodeBackend           = "backendUnavailable"
	CodeInvalidRequest    = "invalidRequest"
	CodePartialWrite      = "partialWrite"
	CodeSessionNotFound   = "sessionNotFound"
	CodeInvalidTransition = "invalidTransition"
)

// BookingError carries a stable code alongside the caller-facing message.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewConfigError(msg string) error {
	return &BookingError{Code: CodeConfig, Message: msg}
}

func NewBackendUnavailable(msg string) error {
	return &BookingError{Code: CodeBackend, Message: msg}
}

func NewInvalidRequest(msg string) error {
	return &BookingError{Code: CodeInvalidRequest, Message: msg}
}

// NewPartialWrite marks the ledger-written / hold-missing failure mode. The
// ledger row exists even though the call failed.
func NewPartialWrite(msg string) error {
	return &BookingError{Code: CodePartialWrite, Message: msg}
}

func NewSessionNotFound(msg string) error {
	return &BookingError{Code: CodeSessionNotFound, Message: msg}
}

func NewInvalidTransition(msg string) error {
	return &BookingError{Code: CodeInvalidTransition, Message: msg}
}

// ErrCode extracts the booking error code, or "" for foreign errors.
func ErrCode(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// UserMessage returns the message safe to surface to a caller.
func UserMessage(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Message
	}
	return "booking request failed"
}
