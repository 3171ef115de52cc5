package cart

import "context"

type storeCtxKey struct{}

// WithStore provisions the store for everything running under ctx.
func WithStore(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, storeCtxKey{}, store)
}

// FromContext returns the provisioned store or ErrStoreUnavailable.
func FromContext(ctx context.Context) (*Store, error) {
	if ctx == nil {
		return nil, ErrStoreUnavailable
	}
	store, ok := ctx.Value(storeCtxKey{}).(*Store)
	if !ok || store == nil {
		return nil, ErrStoreUnavailable
	}
	return store, nil
}

// MustFromContext is FromContext for callers that treat a missing store as fatal.
func MustFromContext(ctx context.Context) *Store {
	store, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return store
}
