/*
Package user Application Layer - accounts, authentication and balance
*/
package user

import (
	"context"
	"errors"
	"strings"

	"foodorder/domain/shared"
	"foodorder/domain/user"
	"foodorder/pkg/auth"
	"foodorder/pkg/logger"

	"go.uber.org/zap"
)

// PasswordHasher hashes and verifies plain-text passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) (bool, error)
}

// TokenManager issues and verifies access tokens.
type TokenManager interface {
	Sign(userID uint) (string, error)
	Parse(token string) (*auth.Claims, error)
}

// ApplicationService User application service
type ApplicationService struct {
	userRepo    user.Repository
	profileRepo user.ProfileRepository
	uow         shared.UnitOfWork
	hasher      PasswordHasher
	tokens      TokenManager
}

// NewApplicationService Create user application service
func NewApplicationService(
	userRepo user.Repository,
	profileRepo user.ProfileRepository,
	uow shared.UnitOfWork,
	hasher PasswordHasher,
	tokens TokenManager,
) *ApplicationService {
	return &ApplicationService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		uow:         uow,
		hasher:      hasher,
		tokens:      tokens,
	}
}

// Register creates a Customer and an empty profile.
func (s *ApplicationService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	return s.register(ctx, req, user.RoleCustomer)
}

// RegisterAdmin is Register for operators; it is not exposed over HTTP.
func (s *ApplicationService) RegisterAdmin(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	return s.register(ctx, req, user.RoleAdmin)
}

func (s *ApplicationService) register(ctx context.Context, req RegisterRequest, role user.Role) (*RegisterResponse, error) {
	if err := user.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	// Check the other fields before hashing.
	if _, err := user.New(user.Registration{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: "-",
		PhoneNumber:  req.PhoneNumber,
		Role:         role,
	}); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, shared.Wrap(shared.KindInternal, "user", err)
	}
	u, err := user.New(user.Registration{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		PhoneNumber:  req.PhoneNumber,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		taken, err := s.userRepo.Taken(ctx, u.Username(), u.Email(), u.PhoneNumber())
		if err != nil {
			return err
		}
		switch {
		case taken.Username:
			return shared.NewValidationError("user", "username", "Username is already used, please use another username!")
		case taken.Email:
			return shared.NewValidationError("user", "email", "Email is already used, please use another email!")
		case taken.Phone:
			return shared.NewValidationError("user", "phoneNumber", "Phone number is already registered, please use another phone number!")
		}

		if err := s.userRepo.Save(ctx, u); err != nil {
			return err
		}
		return s.profileRepo.Save(ctx, user.NewProfile(u.ID()))
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User registered", zap.Uint("user_id", u.ID()), zap.String("role", string(role)))
	return &RegisterResponse{ID: u.ID(), Email: u.Email().Value(), Username: u.Username()}, nil
}

// Login verifies credentials and issues an access token. An unknown email and a wrong
// password produce the same error.
func (s *ApplicationService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, shared.NewError(shared.KindEmailRequired, "user", "")
	}
	if req.Password == "" {
		return nil, shared.NewError(shared.KindPasswordRequired, "user", "")
	}

	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, shared.NewError(shared.KindWrongCredentials, "user", "")
	}
	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	ok, err := s.hasher.Compare(u.PasswordHash(), req.Password)
	if err != nil {
		return nil, shared.Wrap(shared.KindInternal, "user", err)
	}
	if !ok {
		return nil, shared.NewError(shared.KindWrongCredentials, "user", "")
	}

	token, err := s.tokens.Sign(u.ID())
	if err != nil {
		return nil, shared.Wrap(shared.KindInternal, "user", err)
	}
	return &LoginResponse{
		AccessToken: token,
		Username:    u.Username(),
		Email:       u.Email().Value(),
		Role:        string(u.Role()),
	}, nil
}

// Authenticate resolves an access token to the current state of its user.
func (s *ApplicationService) Authenticate(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, shared.NewError(shared.KindAccessTokenMissing, "user", "")
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, shared.NewError(shared.KindInvalidToken, "user", "")
	}
	u, err := s.userRepo.FindByID(ctx, claims.UserID)
	if errors.Is(err, shared.ErrUserNotFound) {
		return nil, shared.NewError(shared.KindInvalidToken, "user", "")
	}
	if err != nil {
		return nil, err
	}
	return &Identity{ID: u.ID(), Role: u.Role(), Email: u.Email().Value()}, nil
}

func (s *ApplicationService) GetProfile(ctx context.Context, userID uint) (*ProfileResponse, error) {
	var resp *ProfileResponse
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		p, err := s.profileRepo.FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		resp = toProfileResponse(p)
		return nil
	})
	return resp, err
}

func (s *ApplicationService) UpdateProfile(ctx context.Context, userID uint, req UpdateProfileRequest) (*ProfileResponse, error) {
	var resp *ProfileResponse
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		p, err := s.profileRepo.FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		p.UpdateDetails(req.FirstName, req.LastName, req.Address)
		if err := s.profileRepo.Save(ctx, p); err != nil {
			return err
		}
		resp = toProfileResponse(p)
		return nil
	})
	return resp, err
}

// AddBalance credits amount to the caller's profile.
func (s *ApplicationService) AddBalance(ctx context.Context, userID uint, amount int64) (*ProfileResponse, error) {
	if amount <= 0 {
		return nil, shared.NewError(shared.KindInvalidAmount, "profile", "")
	}

	var resp *ProfileResponse
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		p, err := s.profileRepo.FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if err := p.Credit(amount); err != nil {
			return err
		}
		if err := s.profileRepo.Save(ctx, p); err != nil {
			return err
		}
		resp = toProfileResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Balance added", zap.Uint("user_id", userID), zap.Int64("amount", amount))
	return resp, nil
}
