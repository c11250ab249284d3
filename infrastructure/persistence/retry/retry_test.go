package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodorder/domain/shared"

	mysqlDriver "github.com/go-sql-driver/mysql"
)

func fastConfig() Config {
	c := DefaultConfig
	c.InitialDelay = time.Millisecond
	c.MaxDelay = 2 * time.Millisecond
	return c
}

func TestExecuteWithRetryRetriesConflicts(t *testing.T) {
	calls := 0
	err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return shared.NewConflictError("cart", errors.New("duplicate open cart"))
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Fatalf("err = %v calls = %d", err, calls)
	}
}

func TestExecuteWithRetryStopsOnBusinessErrors(t *testing.T) {
	calls := 0
	err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		return shared.NewError(shared.KindInsufficientBalance, "profile", "")
	})
	if !errors.Is(err, shared.ErrInsufficientBalance) || calls != 1 {
		t.Fatalf("err = %v calls = %d", err, calls)
	}
}

func TestExecuteWithRetryGivesUp(t *testing.T) {
	calls := 0
	err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		return &mysqlDriver.MySQLError{Number: mysqlDeadlock, Message: "Deadlock found"}
	})
	if err == nil || calls != DefaultConfig.MaxAttempts {
		t.Fatalf("err = %v calls = %d", err, calls)
	}
}

func TestIsRetryableError(t *testing.T) {
	cfg := DefaultConfig
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("boom"), false},
		{&mysqlDriver.MySQLError{Number: mysqlLockTimeout}, true},
		{errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"), true},
		{errors.New("database is locked"), true},
	}
	for _, tc := range cases {
		if got := IsRetryableError(tc.err, cfg); got != tc.want {
			t.Errorf("IsRetryableError(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}

	cfg.RetryOnDeadlock = false
	if IsRetryableError(&mysqlDriver.MySQLError{Number: mysqlDeadlock}, cfg) {
		t.Error("deadlock retry disabled")
	}
}

func TestBackoffIsCapped(t *testing.T) {
	cfg := DefaultConfig
	cfg.JitterEnabled = false
	if d := ExponentialBackoffWithJitter(1, cfg); d != 50*time.Millisecond {
		t.Errorf("attempt 1 = %v", d)
	}
	if d := ExponentialBackoffWithJitter(10, cfg); d != time.Second {
		t.Errorf("attempt 10 = %v", d)
	}
}
