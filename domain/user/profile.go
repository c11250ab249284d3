package user

import (
	"math"
	"time"

	"foodorder/domain/shared"
)

// Profile is one-to-one with a User and holds the spendable balance.
type Profile struct {
	id             uint
	userID         uint
	currentBalance int64
	firstName      string
	lastName       string
	address        string
	updatedAt      time.Time
}

// NewProfile creates the empty profile made at registration.
func NewProfile(userID uint) *Profile {
	return &Profile{userID: userID, updatedAt: time.Now()}
}

// Credit adds a positive amount to the balance. An amount the balance cannot hold is
// rejected and the balance is left as it was.
func (p *Profile) Credit(amount int64) error {
	if amount <= 0 {
		return shared.NewError(shared.KindInvalidAmount, "profile", "")
	}
	if amount > math.MaxInt64-p.currentBalance {
		return shared.NewError(shared.KindInvalidAmount, "profile", "Amount exceeds the maximum balance.")
	}
	p.currentBalance += amount
	p.updatedAt = time.Now()
	return nil
}

// Debit takes amount from the balance; the balance never goes negative.
func (p *Profile) Debit(amount int64) error {
	if amount < 0 {
		return shared.NewError(shared.KindInvalidAmount, "profile", "")
	}
	if amount > p.currentBalance {
		return shared.NewError(shared.KindInsufficientBalance, "profile", "")
	}
	p.currentBalance -= amount
	p.updatedAt = time.Now()
	return nil
}

// UpdateDetails replaces the optional personal fields.
func (p *Profile) UpdateDetails(firstName, lastName, address string) {
	p.firstName = firstName
	p.lastName = lastName
	p.address = address
	p.updatedAt = time.Now()
}

func (p *Profile) SetID(id uint) { p.id = id }

func (p *Profile) ID() uint              { return p.id }
func (p *Profile) UserID() uint          { return p.userID }
func (p *Profile) CurrentBalance() int64 { return p.currentBalance }
func (p *Profile) FirstName() string     { return p.firstName }
func (p *Profile) LastName() string      { return p.lastName }
func (p *Profile) Address() string       { return p.address }
func (p *Profile) UpdatedAt() time.Time  { return p.updatedAt }

type ProfileDTO struct {
	ID             uint
	UserID         uint
	CurrentBalance int64
	FirstName      string
	LastName       string
	Address        string
	UpdatedAt      time.Time
}

func RebuildProfile(dto ProfileDTO) *Profile {
	return &Profile{
		id:             dto.ID,
		userID:         dto.UserID,
		currentBalance: dto.CurrentBalance,
		firstName:      dto.FirstName,
		lastName:       dto.LastName,
		address:        dto.Address,
		updatedAt:      dto.UpdatedAt,
	}
}
