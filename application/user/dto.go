package user

import (
	"time"

	"foodorder/domain/user"
)

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
}

type RegisterResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`

	Username string `json:"-"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
}

type AddBalanceRequest struct {
	Amount int64 `json:"amount"`
}

type ProfileResponse struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"userId"`
	CurrentBalance int64     `json:"currentBalance"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Address        string    `json:"address"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Identity is the authenticated caller.
type Identity struct {
	ID    uint
	Role  user.Role
	Email string
}

func (i Identity) IsAdmin() bool { return i.Role == user.RoleAdmin }

func toProfileResponse(p *user.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:             p.ID(),
		UserID:         p.UserID(),
		CurrentBalance: p.CurrentBalance(),
		FirstName:      p.FirstName(),
		LastName:       p.LastName(),
		Address:        p.Address(),
		UpdatedAt:      p.UpdatedAt(),
	}
}
