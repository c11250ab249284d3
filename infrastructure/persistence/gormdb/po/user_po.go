package po

import (
	"time"

	"foodorder/domain/user"
)

// UserPO User persistence object
type UserPO struct {
	ID          uint      `gorm:"primaryKey"`
	Username    string    `gorm:"size:100;uniqueIndex;not null"`
	Email       string    `gorm:"size:255;uniqueIndex;not null"`
	Password    string    `gorm:"size:255;not null"`
	Role        string    `gorm:"size:20;not null"`
	PhoneNumber string    `gorm:"size:50;uniqueIndex;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (UserPO) TableName() string {
	return "users"
}

func FromUserDomain(u *user.User) *UserPO {
	return &UserPO{
		ID:          u.ID(),
		Username:    u.Username(),
		Email:       u.Email().Value(),
		Password:    u.PasswordHash(),
		Role:        string(u.Role()),
		PhoneNumber: u.PhoneNumber(),
		CreatedAt:   u.CreatedAt(),
		UpdatedAt:   u.UpdatedAt(),
	}
}

func (p *UserPO) ToDomain() *user.User {
	return user.RebuildFromDTO(user.ReconstructionDTO{
		ID:           p.ID,
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: p.Password,
		Role:         user.Role(p.Role),
		PhoneNumber:  p.PhoneNumber,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	})
}

// ProfilePO Profile persistence object, one per user
type ProfilePO struct {
	ID             uint      `gorm:"primaryKey"`
	UserID         uint      `gorm:"uniqueIndex;not null"`
	CurrentBalance int64     `gorm:"not null;default:0"`
	FirstName      string    `gorm:"size:100"`
	LastName       string    `gorm:"size:100"`
	Address        string    `gorm:"size:512"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (ProfilePO) TableName() string {
	return "profiles"
}

func FromProfileDomain(p *user.Profile) *ProfilePO {
	return &ProfilePO{
		ID:             p.ID(),
		UserID:         p.UserID(),
		CurrentBalance: p.CurrentBalance(),
		FirstName:      p.FirstName(),
		LastName:       p.LastName(),
		Address:        p.Address(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

func (p *ProfilePO) ToDomain() *user.Profile {
	return user.RebuildProfile(user.ProfileDTO{
		ID:             p.ID,
		UserID:         p.UserID,
		CurrentBalance: p.CurrentBalance,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Address:        p.Address,
		UpdatedAt:      p.UpdatedAt,
	})
}
