/*
Package user holds accounts and their profiles. The Profile carries the balance
that checkout debits.
*/
package user

import (
	"strings"
	"time"

	"foodorder/domain/shared"
)

// User is an account. Passwords are stored as hashes only.
type User struct {
	id           uint
	username     string
	email        Email
	passwordHash string
	role         Role
	phoneNumber  string
	createdAt    time.Time
	updatedAt    time.Time
}

// Registration is the input to New.
type Registration struct {
	Username     string
	Email        string
	PasswordHash string
	PhoneNumber  string
	Role         Role
}

// New validates a registration. The password must already be hashed; run
// ValidatePassword on the plain text first.
func New(r Registration) (*User, error) {
	username := strings.TrimSpace(r.Username)
	if username == "" {
		return nil, shared.NewValidationError("user", "username", "Username is required!")
	}
	email, err := NewEmail(r.Email)
	if err != nil {
		return nil, err
	}
	if r.PasswordHash == "" {
		return nil, shared.NewValidationError("user", "password", "Password is required!")
	}
	phone := strings.TrimSpace(r.PhoneNumber)
	if phone == "" {
		return nil, shared.NewValidationError("user", "phoneNumber", "Phone number is required!")
	}
	role := r.Role
	if role == "" {
		role = RoleCustomer
	}
	if !role.Valid() {
		return nil, shared.NewValidationError("user", "role", "Role must be Customer or Admin!")
	}

	now := time.Now()
	return &User{
		username:     username,
		email:        email,
		passwordHash: r.PasswordHash,
		role:         role,
		phoneNumber:  phone,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func (u *User) SetID(id uint) { u.id = id }

func (u *User) ID() uint             { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) PhoneNumber() string  { return u.phoneNumber }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// ReconstructionDTO rebuilds a User from storage.
type ReconstructionDTO struct {
	ID           uint
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	PhoneNumber  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func RebuildFromDTO(dto ReconstructionDTO) *User {
	return &User{
		id:           dto.ID,
		username:     dto.Username,
		email:        Email{value: dto.Email},
		passwordHash: dto.PasswordHash,
		role:         dto.Role,
		phoneNumber:  dto.PhoneNumber,
		createdAt:    dto.CreatedAt,
		updatedAt:    dto.UpdatedAt,
	}
}
