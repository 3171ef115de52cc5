package cart

import (
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
)

var (
	// ErrStoreUnavailable means a consumer ran outside the store's provisioning
	// scope. It is a wiring defect and is never degraded silently.
	ErrStoreUnavailable = pkgerrors.New(pkgerrors.CodeStoreUnavailable, "cart store accessed outside its provisioning scope")

	// ErrNotReady is returned by mutations attempted before hydration finished.
	ErrNotReady = pkgerrors.New(pkgerrors.CodeNotReady, "cart store is not hydrated yet")
)

func malformed(rec Record) error {
	return pkgerrors.New(pkgerrors.CodeMalformedInput, "cart record rejected").
		WithDetails(map[string]any{"record": rec})
}
