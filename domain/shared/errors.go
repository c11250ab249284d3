/*
Package shared holds the error model and transaction port shared by every aggregate.

Domain errors carry a Kind from a closed set instead of HTTP concepts; pkg/errors maps
each Kind to a transport code. The stack is captured when the error is built and only
formatted when a handler logs it.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Kind classifies a DomainError.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindEmailRequired
	KindPasswordRequired
	KindAccessTokenMissing
	KindWrongCredentials
	KindInvalidToken
	KindMenuNotFound
	KindItemNotFound
	KindCartNotFound
	KindProfileNotFound
	KindUserNotFound
	KindInsufficientBalance
	KindForbidden
	KindInvalidAmount
	KindConflict
)

var kindNames = [...]string{
	KindInternal:            "internal",
	KindValidation:          "validation",
	KindEmailRequired:       "email_required",
	KindPasswordRequired:    "password_required",
	KindAccessTokenMissing:  "access_token_missing",
	KindWrongCredentials:    "wrong_credentials",
	KindInvalidToken:        "invalid_token",
	KindMenuNotFound:        "menu_not_found",
	KindItemNotFound:        "item_not_found",
	KindCartNotFound:        "cart_not_found",
	KindProfileNotFound:     "profile_not_found",
	KindUserNotFound:        "user_not_found",
	KindInsufficientBalance: "insufficient_balance",
	KindForbidden:           "forbidden",
	KindInvalidAmount:       "invalid_amount",
	KindConflict:            "conflict",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ============================================================================
// Sentinel errors
// Compare with errors.Is; any DomainError of the same Kind matches.
// ============================================================================

var (
	ErrValidation          = &DomainError{Kind: KindValidation, Message: "validation failed"}
	ErrEmailRequired       = &DomainError{Kind: KindEmailRequired, Message: "Email is Required!"}
	ErrPasswordRequired    = &DomainError{Kind: KindPasswordRequired, Message: "Password is Required!"}
	ErrAccessTokenMissing  = &DomainError{Kind: KindAccessTokenMissing, Message: "Access required, please sign in first!"}
	ErrWrongCredentials    = &DomainError{Kind: KindWrongCredentials, Message: "Invalid Email or Password"}
	ErrInvalidToken        = &DomainError{Kind: KindInvalidToken, Message: "Invalid Token"}
	ErrMenuNotFound        = &DomainError{Kind: KindMenuNotFound, Message: "Menu Not Found"}
	ErrItemNotFound        = &DomainError{Kind: KindItemNotFound, Message: "Item Not Found"}
	ErrCartNotFound        = &DomainError{Kind: KindCartNotFound, Message: "Cart Not Found"}
	ErrProfileNotFound     = &DomainError{Kind: KindProfileNotFound, Message: "Profile Not Found"}
	ErrUserNotFound        = &DomainError{Kind: KindUserNotFound, Message: "User Not Found"}
	ErrInsufficientBalance = &DomainError{Kind: KindInsufficientBalance, Message: "Insufficient balance. Payment required!"}
	ErrForbidden           = &DomainError{Kind: KindForbidden, Message: "Forbidden, Admin Authentication required!."}
	ErrInvalidAmount       = &DomainError{Kind: KindInvalidAmount, Message: "Invalid amount. Amount must be a positive number."}
	ErrConflict            = &DomainError{Kind: KindConflict, Message: "resource was modified by another transaction, please retry"}
)

// DomainError is a classified business error with an optional cause and capture-site stack.
type DomainError struct {
	Kind Kind

	// Entity is the aggregate the error is about ("cart", "menu", ...)
	Entity string

	// Field is set for validation errors
	Field string

	// Message is safe to show to the client
	Message string

	// Err is the underlying cause, if any
	Err error

	stack []uintptr
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError with the same Kind.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Kind == e.Kind
}

func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// KindOf reports the Kind of the first DomainError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// ============================================================================
// Stack capture
// ============================================================================

// CaptureStack records the current call stack.
// skip: frames to skip (usually 3: Callers, CaptureStack, NewXxxError)
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders frames as "file:line function", skipping runtime frames, at most 10.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) >= 10 {
			break
		}
	}
	return result
}

// ============================================================================
// Constructors
// ============================================================================

// NewError builds a DomainError of kind; an empty message falls back to the sentinel text.
func NewError(kind Kind, entity, message string) error {
	if message == "" {
		message = defaultMessage(kind)
	}
	return &DomainError{
		Kind:    kind,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError reports an invalid field with a client-facing reason.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Kind:    KindValidation,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewConflictError reports a lost race (unique violation, deadlock); the unit of work retries it.
func NewConflictError(entity string, cause error) error {
	return &DomainError{
		Kind:    KindConflict,
		Entity:  entity,
		Message: ErrConflict.Message,
		Err:     cause,
		stack:   CaptureStack(3),
	}
}

// Wrap attaches a stack and kind to an infrastructure error.
func Wrap(kind Kind, entity string, err error) error {
	if err == nil {
		return nil
	}
	return &DomainError{
		Kind:    kind,
		Entity:  entity,
		Message: defaultMessage(kind),
		Err:     err,
		stack:   CaptureStack(3),
	}
}

func defaultMessage(kind Kind) string {
	switch kind {
	case KindValidation:
		return ErrValidation.Message
	case KindEmailRequired:
		return ErrEmailRequired.Message
	case KindPasswordRequired:
		return ErrPasswordRequired.Message
	case KindAccessTokenMissing:
		return ErrAccessTokenMissing.Message
	case KindWrongCredentials:
		return ErrWrongCredentials.Message
	case KindInvalidToken:
		return ErrInvalidToken.Message
	case KindMenuNotFound:
		return ErrMenuNotFound.Message
	case KindItemNotFound:
		return ErrItemNotFound.Message
	case KindCartNotFound:
		return ErrCartNotFound.Message
	case KindProfileNotFound:
		return ErrProfileNotFound.Message
	case KindUserNotFound:
		return ErrUserNotFound.Message
	case KindInsufficientBalance:
		return ErrInsufficientBalance.Message
	case KindForbidden:
		return ErrForbidden.Message
	case KindInvalidAmount:
		return ErrInvalidAmount.Message
	case KindConflict:
		return ErrConflict.Message
	default:
		return "Internal Server Error"
	}
}

// Stacker is implemented by errors that can report where they were created.
type Stacker interface {
	Stack() []string
}
