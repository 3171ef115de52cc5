package cart

import (
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
)

func TestFromContextOutsideScope(t *testing.T) {
	_, err := FromContext(context.Background())
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if !pkgerrors.HasCode(err, pkgerrors.CodeStoreUnavailable) {
		t.Fatalf("expected store unavailable code, got %v", err)
	}
}

func TestFromContextWithinScope(t *testing.T) {
	store, _, _ := readyStore(t)
	ctx := WithStore(context.Background(), store)

	got, err := FromContext(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != store {
		t.Fatalf("expected provisioned store")
	}
}

func TestMustFromContextPanicsOutsideScope(t *testing.T) {
	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatal("expected panic outside provisioning scope")
		}
		err, ok := rec.(error)
		if !ok || !errors.Is(err, ErrStoreUnavailable) {
			t.Fatalf("unexpected panic value %v", rec)
		}
	}()
	MustFromContext(context.Background())
}
