package carts

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/teetribe/teetribe-backend/internal/cart"
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
)

// kv is the slice of pkg/redis.Client the repository needs.
type kv interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	DelCount(ctx context.Context, keys ...string) (int64, error)
	CartKey(userID string) string
}

// storedCart is the JSON document kept per shopper.
type storedCart struct {
	UserID    string      `json:"user_id"`
	Items     []cart.Line `json:"items"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Repository keeps carts in Redis, one key per user.
type Repository struct {
	kv  kv
	ttl time.Duration
	now func() time.Time
}

// NewRepository binds the repository to a Redis client. A zero ttl keeps carts
// until they are cleared.
func NewRepository(client kv, ttl time.Duration) (*Repository, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &Repository{kv: client, ttl: ttl, now: time.Now}, nil
}

// Get returns the stored lines; found is false when the user has no cart.
func (r *Repository) Get(ctx context.Context, userID string) ([]cart.Line, bool, error) {
	raw, err := r.kv.Get(ctx, r.kv.CartKey(userID))
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read cart")
	}

	var doc storedCart
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode stored cart")
	}
	return doc.Items, true, nil
}

// Save replaces the user's cart and refreshes its expiry.
func (r *Repository) Save(ctx context.Context, userID string, lines []cart.Line) error {
	if lines == nil {
		lines = []cart.Line{}
	}
	payload, err := json.Marshal(storedCart{UserID: userID, Items: lines, UpdatedAt: r.now().UTC()})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := r.kv.Set(ctx, r.kv.CartKey(userID), string(payload), r.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write cart")
	}
	return nil
}

// Delete removes the user's cart and reports whether one existed.
func (r *Repository) Delete(ctx context.Context, userID string) (bool, error) {
	removed, err := r.kv.DelCount(ctx, r.kv.CartKey(userID))
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart")
	}
	return removed > 0, nil
}
