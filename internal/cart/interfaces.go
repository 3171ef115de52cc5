package cart

import (
	"context"
	"time"
)

// LocalStore is the durable fallback for the current cart.
type LocalStore interface {
	Save(ctx context.Context, lines []Line) error
	Load(ctx context.Context) ([]Record, error)
}

// RemoteStore is the server-side cart keyed by user id.
type RemoteStore interface {
	FetchCart(ctx context.Context, userID string) ([]Record, error)
	PushCart(ctx context.Context, userID string, items []Record) error
	ClearCart(ctx context.Context, userID string) error
}

// Notifier receives the confirmation shown to the shopper after a mutation.
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(ctx context.Context, notice Notice)

func (f NotifierFunc) Notify(ctx context.Context, notice Notice) {
	f(ctx, notice)
}

// Observer records sync and hydration outcomes.
type Observer interface {
	ObserveSync(op, outcome string, elapsed time.Duration)
	IncSyncDropped()
	IncHydration(source string)
}

type noopObserver struct{}

func (noopObserver) ObserveSync(string, string, time.Duration) {}
func (noopObserver) IncSyncDropped()                           {}
func (noopObserver) IncHydration(string)                       {}
