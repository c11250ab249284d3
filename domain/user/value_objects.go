package user

import (
	"regexp"
	"strings"

	"foodorder/domain/shared"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Email Value object - immutable, lower-cased address
type Email struct {
	value string
}

// NewEmail validates and normalizes an address.
func NewEmail(email string) (Email, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return Email{}, shared.NewValidationError("user", "email", "Email is required!")
	}
	if !emailRegex.MatchString(email) {
		return Email{}, shared.NewValidationError("user", "email", "Email format is not valid!")
	}
	return Email{value: email}, nil
}

func (e Email) Value() string {
	return e.value
}

func (e Email) Equals(other Email) bool {
	return e.value == other.value
}

func (e Email) String() string {
	return e.value
}

// Role gates access to routes.
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleAdmin    Role = "Admin"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// MinPasswordLength applies to the plain-text password before hashing.
const MinPasswordLength = 8

// ValidatePassword checks a plain-text password.
func ValidatePassword(plain string) error {
	if plain == "" {
		return shared.NewValidationError("user", "password", "Password is required!")
	}
	if len(plain) < MinPasswordLength {
		return shared.NewValidationError("user", "password", "Password length are minimum 8 characters!")
	}
	return nil
}
