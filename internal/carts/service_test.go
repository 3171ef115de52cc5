package carts

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/teetribe/teetribe-backend/internal/cart"
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
)

type fakeKV struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) DelCount(_ context.Context, keys ...string) (int64, error) {
	var n int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			n++
			delete(f.data, key)
		}
	}
	return n, nil
}

func (f *fakeKV) CartKey(userID string) string {
	return "tt:cart:" + userID
}

func newTestService(t *testing.T, kv *fakeKV) Service {
	t.Helper()
	repo, err := NewRepository(kv, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestGetMissingCartIsEmpty(t *testing.T) {
	svc := newTestService(t, newFakeKV())
	got, err := svc.Get(context.Background(), "guest_user")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UserID != "guest_user" || got.Items == nil || len(got.Items) != 0 {
		t.Fatalf("unexpected cart %+v", got)
	}
}

func TestSaveSanitizesAndStoresWithTTL(t *testing.T) {
	kv := newFakeKV()
	svc := newTestService(t, kv)
	ctx := context.Background()

	res, err := svc.Save(ctx, "guest_user", []cart.Record{
		{"id": "7", "name": "Geo Bandana", "price": "1500", "quantity": "2", "size": "M"},
		{"id": "7", "price": 1500, "quantity": 1, "size": "M"},
		{"id": "9", "price": -5},
		{"name": "no id"},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if res.Message != "Cart saved" || res.Count != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if ttl := kv.ttls["tt:cart:guest_user"]; ttl != 24*time.Hour {
		t.Fatalf("expected ttl 24h, got %s", ttl)
	}
	if !strings.Contains(kv.data["tt:cart:guest_user"], `"user_id":"guest_user"`) {
		t.Fatalf("expected stored document, got %s", kv.data["tt:cart:guest_user"])
	}

	got, err := svc.Get(ctx, "guest_user")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := cart.Line{ID: "7", Name: "Geo Bandana", Price: 1500, Size: "M", Quantity: 3}
	if len(got.Items) != 1 || got.Items[0] != want {
		t.Fatalf("unexpected items %+v", got.Items)
	}
}

func TestClearMissingCartIsNotFound(t *testing.T) {
	kv := newFakeKV()
	svc := newTestService(t, kv)
	ctx := context.Background()

	err := svc.Clear(ctx, "guest_user")
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if _, err := svc.Save(ctx, "guest_user", []cart.Record{{"id": "1", "price": 2500}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := svc.Clear(ctx, "guest_user"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := kv.data["tt:cart:guest_user"]; ok {
		t.Fatal("expected cart key removed")
	}
}

func TestBlankUserIDIsValidationError(t *testing.T) {
	svc := newTestService(t, newFakeKV())
	if _, err := svc.Get(context.Background(), "  "); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRedisFailureIsDependencyError(t *testing.T) {
	kv := newFakeKV()
	kv.getErr = errors.New("connection refused")
	svc := newTestService(t, kv)
	if _, err := svc.Get(context.Background(), "u"); !pkgerrors.HasCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error for nil repo")
	}
	if _, err := NewRepository(nil, 0); err == nil {
		t.Fatal("expected error for nil client")
	}
}
