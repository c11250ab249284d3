package user

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"foodorder/config"
	"foodorder/domain/shared"
	"foodorder/domain/user"
	"foodorder/infrastructure/persistence/gormdb"
	"foodorder/infrastructure/persistence/gormdb/gormdbtest"
	"foodorder/infrastructure/persistence/retry"
	"foodorder/pkg/auth"

	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T) *ApplicationService {
	t.Helper()
	db := gormdbtest.New(t)
	return NewApplicationService(
		gormdb.NewUserRepository(db),
		gormdb.NewProfileRepository(db),
		gormdb.NewUnitOfWork(db, retry.DefaultConfig),
		auth.NewBcryptHasher(bcrypt.MinCost),
		auth.NewJWTManager(config.AuthConfig{JWTSecret: "test-secret", Issuer: "foodorder", TokenTTL: time.Hour}),
	)
}

var alice = RegisterRequest{
	Username:    "alice",
	Email:       "alice@example.com",
	Password:    "password123",
	PhoneNumber: "08123456789",
}

func register(t *testing.T, svc *ApplicationService) *RegisterResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), alice)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return resp
}

func messageOf(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

func TestRegisterCreatesCustomerWithProfile(t *testing.T) {
	svc := newService(t)
	resp := register(t, svc)
	if resp.ID == 0 || resp.Email != "alice@example.com" || resp.Username != "alice" {
		t.Fatalf("resp = %+v", resp)
	}

	p, err := svc.GetProfile(context.Background(), resp.ID)
	if err != nil {
		t.Fatal(err)
	}
	if p.CurrentBalance != 0 || p.UserID != resp.ID {
		t.Errorf("profile = %+v", p)
	}
}

func TestRegisterRejectsDuplicatesAndBadInput(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	register(t, svc)

	tests := []struct {
		name string
		req  RegisterRequest
		want string
	}{
		{"username", RegisterRequest{Username: "alice", Email: "a2@example.com", Password: "password123", PhoneNumber: "1"},
			"Username is already used, please use another username!"},
		{"email", RegisterRequest{Username: "bob", Email: "ALICE@example.com", Password: "password123", PhoneNumber: "2"},
			"Email is already used, please use another email!"},
		{"phone", RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "password123", PhoneNumber: "08123456789"},
			"Phone number is already registered, please use another phone number!"},
		{"short password", RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "short", PhoneNumber: "3"},
			"Password length are minimum 8 characters!"},
		{"bad email", RegisterRequest{Username: "bob", Email: "bob", Password: "password123", PhoneNumber: "3"},
			"Email format is not valid!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			if shared.KindOf(err) != shared.KindValidation || messageOf(err) != tt.want {
				t.Fatalf("Register() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	registered := register(t, svc)

	resp, err := svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.AccessToken == "" || resp.Username != "alice" || resp.Role != string(user.RoleCustomer) {
		t.Fatalf("login = %+v", resp)
	}

	id, err := svc.Authenticate(ctx, resp.AccessToken)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if id.ID != registered.ID || id.IsAdmin() || id.Email != "alice@example.com" {
		t.Errorf("identity = %+v", id)
	}

	if _, err := svc.Authenticate(ctx, ""); !errors.Is(err, shared.ErrAccessTokenMissing) {
		t.Errorf("empty token error = %v", err)
	}
	if _, err := svc.Authenticate(ctx, resp.AccessToken+"x"); !errors.Is(err, shared.ErrInvalidToken) {
		t.Errorf("tampered token error = %v", err)
	}
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc := newService(t)
	token, err := svc.tokens.Sign(999)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("Authenticate() error = %v, want invalid token", err)
	}
}

func TestLoginErrors(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	register(t, svc)

	tests := []struct {
		name string
		req  LoginRequest
		want error
	}{
		{"no email", LoginRequest{Password: "password123"}, shared.ErrEmailRequired},
		{"no password", LoginRequest{Email: "alice@example.com"}, shared.ErrPasswordRequired},
		{"unknown email", LoginRequest{Email: "nobody@example.com", Password: "password123"}, shared.ErrWrongCredentials},
		{"wrong password", LoginRequest{Email: "alice@example.com", Password: "password124"}, shared.ErrWrongCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(ctx, tt.req); !errors.Is(err, tt.want) {
				t.Fatalf("Login() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAddBalance(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	u := register(t, svc)

	p, err := svc.AddBalance(ctx, u.ID, 500000)
	if err != nil {
		t.Fatal(err)
	}
	if p.CurrentBalance != 500000 {
		t.Errorf("balance = %d, want 500000", p.CurrentBalance)
	}

	if _, err := svc.AddBalance(ctx, u.ID, -1); !errors.Is(err, shared.ErrInvalidAmount) {
		t.Errorf("negative amount error = %v", err)
	}
	if _, err := svc.AddBalance(ctx, u.ID, 0); !errors.Is(err, shared.ErrInvalidAmount) {
		t.Errorf("zero amount error = %v", err)
	}
	if _, err := svc.AddBalance(ctx, u.ID, math.MaxInt64); !errors.Is(err, shared.ErrInvalidAmount) {
		t.Errorf("overflowing amount error = %v", err)
	}
	if _, err := svc.AddBalance(ctx, u.ID, math.MaxInt64-500000+1); !errors.Is(err, shared.ErrInvalidAmount) {
		t.Errorf("amount one past the limit error = %v", err)
	}
	got, err := svc.GetProfile(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentBalance != 500000 {
		t.Errorf("balance after rejected top-ups = %d", got.CurrentBalance)
	}

	if _, err := svc.AddBalance(ctx, 999, 10); !errors.Is(err, shared.ErrProfileNotFound) {
		t.Errorf("missing profile error = %v", err)
	}
}

func TestAddBalanceUpToLimit(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	u := register(t, svc)

	tests := []struct {
		name    string
		amount  int64
		wantErr bool
		want    int64
	}{
		{"seed", 10, false, 10},
		{"one past the limit", math.MaxInt64 - 9, true, 10},
		{"exactly the limit", math.MaxInt64 - 10, false, math.MaxInt64},
		{"anything more", 1, true, math.MaxInt64},
	}
	for _, tt := range tests {
		_, err := svc.AddBalance(ctx, u.ID, tt.amount)
		if tt.wantErr != (err != nil) {
			t.Fatalf("%s: AddBalance(%d) error = %v", tt.name, tt.amount, err)
		}
		if err != nil && !errors.Is(err, shared.ErrInvalidAmount) {
			t.Fatalf("%s: error = %v, want invalid amount", tt.name, err)
		}
		got, err := svc.GetProfile(ctx, u.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.CurrentBalance != tt.want {
			t.Errorf("%s: balance = %d, want %d", tt.name, got.CurrentBalance, tt.want)
		}
	}
}

func TestUpdateProfile(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	u := register(t, svc)

	p, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{FirstName: "Alice", LastName: "Liddell", Address: "Jakarta"})
	if err != nil {
		t.Fatal(err)
	}
	if p.FirstName != "Alice" || p.Address != "Jakarta" {
		t.Errorf("profile = %+v", p)
	}
	got, _ := svc.GetProfile(ctx, u.ID)
	if got.LastName != "Liddell" {
		t.Errorf("persisted last name = %q", got.LastName)
	}
}
