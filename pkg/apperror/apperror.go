// Package apperror holds the typed errors handlers forward to the JSON error
// formatter. Each error carries the HTTP status and the details.type tag
// clients switch on.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Type tags reported in details.type.
const (
	TypeRequiredFields        = "REQUIRED_FIELDS"
	TypeRoomExists            = "ROOM_EXISTS"
	TypeUserExists            = "USER_ALREADY_EXISTS"
	TypeRoomNotFound          = "ROOM_NOT_FOUND"
	TypeRoomHasReservations   = "ROOM_HAS_RESERVATIONS"
	TypeUserNotFound          = "USER_NOT_FOUND"
	TypeReservationNotFound   = "RESERVATION_NOT_FOUND"
	TypeInvalidDates          = "INVALID_DATES"
	TypePaymentFailed         = "PAYMENT_FAILED"
	TypeAlreadyConfirmed      = "ALREADY_CONFIRMED"
	TypeReservationNotPending = "RESERVATION_NOT_PENDING"
	TypeInvalidCredentials    = "INVALID_CREDENTIALS"
	TypeTokenMissing          = "TokenMissing"
	TypeTokenUserNotFound     = "UserNotFound"
	TypeTokenExpired          = "TokenExpired"
	TypeInvalidToken          = "InvalidToken"
	TypeForbidden             = "FORBIDDEN"
	TypeAccountDisabled       = "ACCOUNT_DISABLED"
	TypeValidation            = "VALIDATION_ERROR"
	TypeDuplicateKey          = "DuplicateKeyError"
	TypeInvalidFile           = "INVALID_FILE"
	TypeRateLimited           = "RATE_LIMITED"
	TypeServer                = "SERVER_ERROR"
)

// Error is a domain failure with enough information to render a response.
type Error struct {
	Status  int
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Type returns the details.type tag.
func (e *Error) Type() string {
	if t, ok := e.Details["type"].(string); ok {
		return t
	}
	return ""
}

// New builds an error with a type tag and optional extra detail pairs.
func New(status int, typ, message string, extra ...any) *Error {
	details := map[string]any{"type": typ}
	for i := 0; i+1 < len(extra); i += 2 {
		if key, ok := extra[i].(string); ok {
			details[key] = extra[i+1]
		}
	}
	return &Error{Status: status, Message: message, Details: details}
}

// Wrap attaches a cause that is logged but never shown to clients.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func MissingFields(message string, fields ...string) *Error {
	if len(fields) > 0 {
		return New(http.StatusBadRequest, TypeRequiredFields, message, "fields", fields)
	}
	return New(http.StatusBadRequest, TypeRequiredFields, message)
}

func Validation(message string, fields map[string]string) *Error {
	if len(fields) > 0 {
		return New(http.StatusBadRequest, TypeValidation, message, "fields", fields)
	}
	return New(http.StatusBadRequest, TypeValidation, message)
}

func AlreadyExists(typ, message string) *Error {
	return New(http.StatusBadRequest, typ, message)
}

func NotFound(typ, message string) *Error {
	return New(http.StatusNotFound, typ, message)
}

func InvalidDates(message string) *Error {
	return New(http.StatusBadRequest, TypeInvalidDates, message)
}

func PaymentFailed(status string) *Error {
	return New(http.StatusBadRequest, TypePaymentFailed, "Payment not successful", "paymentStatus", status)
}

func Conflict(typ, message string) *Error {
	return New(http.StatusConflict, typ, message)
}

func Unauthorized(typ, message string) *Error {
	return New(http.StatusUnauthorized, typ, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, TypeForbidden, message)
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, TypeServer, "Server error").Wrap(err)
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries the given type tag.
func Is(err error, typ string) bool {
	appErr, ok := As(err)
	return ok && appErr.Type() == typ
}
