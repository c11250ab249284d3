package shared

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainErrorMatchesSentinelByKind(t *testing.T) {
	err := NewError(KindCartNotFound, "cart", "")
	wrapped := fmt.Errorf("checkout: %w", err)

	if !errors.Is(wrapped, ErrCartNotFound) {
		t.Fatal("expected wrapped error to match ErrCartNotFound")
	}
	if errors.Is(wrapped, ErrMenuNotFound) {
		t.Fatal("cart error must not match ErrMenuNotFound")
	}
	if got := KindOf(wrapped); got != KindCartNotFound {
		t.Errorf("KindOf = %v", got)
	}
	if err.Error() != "Cart Not Found" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestConflictKeepsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := NewConflictError("cart", cause)

	if !errors.Is(err, ErrConflict) || !errors.Is(err, cause) {
		t.Fatal("conflict error should match both the sentinel and its cause")
	}
	var s Stacker
	if !errors.As(err, &s) || len(s.Stack()) == 0 {
		t.Fatal("expected a captured stack")
	}
}

func TestKindOfPlainError(t *testing.T) {
	if KindOf(errors.New("x")) != KindInternal {
		t.Error("plain errors are internal")
	}
	if Wrap(KindInternal, "menu", nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}
	if KindConflict.String() != "conflict" {
		t.Errorf("String() = %q", KindConflict.String())
	}
}
