/*
Package errors is the application error model: a stable code for clients, a safe
message, and the original cause for logs.
*/
package errors

import (
	"errors"
	"fmt"

	"foodorder/domain/shared"
)

// ErrorCode is the machine-readable code sent to clients.
type ErrorCode string

const (
	// generic codes
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	// auth codes
	CodeEmailRequired      ErrorCode = "EMAIL_IS_REQUIRED"
	CodePasswordRequired   ErrorCode = "PASSWORD_IS_REQUIRED"
	CodeAccessTokenMissing ErrorCode = "ACCESS_TOKEN_MISSING"
	CodeWrongCredentials   ErrorCode = "WRONG_EMAIL_OR_PASSWORD"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// business codes
	CodeMenuNotFound        ErrorCode = "MENU_NOT_FOUND"
	CodeItemNotFound        ErrorCode = "ITEM_NOT_FOUND"
	CodeCartNotFound        ErrorCode = "CART_NOT_FOUND"
	CodeProfileNotFound     ErrorCode = "PROFILE_NOT_FOUND"
	CodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	CodeInsufficientBalance ErrorCode = "NOT_SUFFICIENT_BALANCE"
	CodeInvalidAmount       ErrorCode = "INVALID_AMOUNT"
)

// InternalMessage is the only text clients see for unexpected failures.
const InternalMessage = "Internal Server Error"

// AppError application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

// Is reports whether err carries code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromDomainError maps any error onto an AppError. Domain errors keep their message;
// everything else becomes CodeInternal with the cause kept for logging.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var de *shared.DomainError
	if !errors.As(err, &de) {
		return Wrap(err, CodeInternal, InternalMessage)
	}

	code := codeFor(de.Kind)
	if code == CodeInternal {
		return Wrap(err, CodeInternal, InternalMessage)
	}
	return Wrap(err, code, de.Message)
}

func codeFor(kind shared.Kind) ErrorCode {
	switch kind {
	case shared.KindValidation:
		return CodeValidation
	case shared.KindEmailRequired:
		return CodeEmailRequired
	case shared.KindPasswordRequired:
		return CodePasswordRequired
	case shared.KindAccessTokenMissing:
		return CodeAccessTokenMissing
	case shared.KindWrongCredentials:
		return CodeWrongCredentials
	case shared.KindInvalidToken:
		return CodeInvalidToken
	case shared.KindMenuNotFound:
		return CodeMenuNotFound
	case shared.KindItemNotFound:
		return CodeItemNotFound
	case shared.KindCartNotFound:
		return CodeCartNotFound
	case shared.KindProfileNotFound:
		return CodeProfileNotFound
	case shared.KindUserNotFound:
		return CodeUserNotFound
	case shared.KindInsufficientBalance:
		return CodeInsufficientBalance
	case shared.KindForbidden:
		return CodeForbidden
	case shared.KindInvalidAmount:
		return CodeInvalidAmount
	case shared.KindConflict:
		return CodeConflict
	case shared.KindInternal:
		return CodeInternal
	default:
		return CodeInternal
	}
}
