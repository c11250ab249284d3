package user

import "context"

// Repository User repository interface
type Repository interface {
	// Save inserts when u.ID() is zero. Unique violations surface as shared.ErrConflict.
	Save(ctx context.Context, u *User) error

	// FindByID returns shared.ErrUserNotFound when absent.
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail returns shared.ErrWrongCredentials when no account matches, so a
	// login cannot tell unknown emails from bad passwords.
	FindByEmail(ctx context.Context, email Email) (*User, error)

	// Taken reports which of the unique fields are already registered.
	Taken(ctx context.Context, username string, email Email, phone string) (Uniqueness, error)
}

// Uniqueness is the result of Repository.Taken.
type Uniqueness struct {
	Username bool
	Email    bool
	Phone    bool
}

// ProfileRepository Profile repository interface
type ProfileRepository interface {
	Save(ctx context.Context, p *Profile) error

	// FindByUserID locks the row inside a unit of work. Missing is shared.ErrProfileNotFound.
	FindByUserID(ctx context.Context, userID uint) (*Profile, error)
}
