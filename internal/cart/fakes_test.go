package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

type fakeLocal struct {
	mu      sync.Mutex
	raw     string
	saves   int
	saveErr error
	loadErr error
}

func (f *fakeLocal) Save(_ context.Context, lines []Line) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	f.raw = string(b)
	return nil
}

func (f *fakeLocal) Load(context.Context) ([]Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.raw == "" {
		return nil, nil
	}
	var records []Record
	if err := json.Unmarshal([]byte(f.raw), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (f *fakeLocal) stored() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.raw
}

type remoteCall struct {
	op    string
	items []Record
}

type fakeRemote struct {
	mu       sync.Mutex
	items    []Record
	fetchErr error
	pushErr  error
	clearErr error
	calls    []remoteCall
	started  int
	// gate, when set, blocks each push/clear until a value is received.
	gate chan struct{}
}

var errOffline = errors.New("remote offline")

func (f *fakeRemote) FetchCart(context.Context, string) ([]Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.items, nil
}

func (f *fakeRemote) PushCart(_ context.Context, _ string, items []Record) error {
	f.mu.Lock()
	f.started++
	f.mu.Unlock()
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, remoteCall{op: OpPush, items: items})
	if f.pushErr != nil {
		return f.pushErr
	}
	f.items = items
	return nil
}

func (f *fakeRemote) ClearCart(context.Context, string) error {
	f.mu.Lock()
	f.started++
	f.mu.Unlock()
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, remoteCall{op: OpClear})
	if f.clearErr != nil {
		return f.clearErr
	}
	f.items = nil
	return nil
}

func (f *fakeRemote) snapshot() ([]Record, []remoteCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	calls := make([]remoteCall, len(f.calls))
	copy(calls, f.calls)
	return f.items, calls
}
