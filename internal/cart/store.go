package cart

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
	"github.com/teetribe/teetribe-backend/pkg/logger"
)

// State is the hydration lifecycle of a Store.
type State int32

const (
	StateUninitialized State = iota
	StateHydrating
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateHydrating:
		return "hydrating"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// HydrationSource names where the initial cart came from.
type HydrationSource string

const (
	SourceNone   HydrationSource = ""
	SourceRemote HydrationSource = "remote"
	SourceLocal  HydrationSource = "local"
	SourceEmpty  HydrationSource = "empty"
)

// Snapshot is a read-only view of the cart with its derived totals.
type Snapshot struct {
	State State  `json:"state"`
	Items []Line `json:"items"`
	Totals
}

// StoreParams wires a Store.
type StoreParams struct {
	UserID   string
	Local    LocalStore
	Remote   RemoteStore
	Notifier Notifier
	Observer Observer
	Logger   *logger.Logger
}

// Store is the in-memory source of truth for one shopper's cart. Mutations
// are serialized; each one persists locally before returning and hands the
// remote write to the Syncer without waiting for it.
type Store struct {
	userID   string
	local    LocalStore
	remote   RemoteStore
	syncer   *Syncer
	notifier Notifier
	observer Observer
	logg     *logger.Logger

	mu    sync.Mutex
	state State
	lines []Line
}

func NewStore(p StoreParams) (*Store, error) {
	if p.UserID == "" {
		return nil, fmt.Errorf("cart user id required")
	}
	if p.Local == nil {
		return nil, fmt.Errorf("local cart store required")
	}
	if p.Remote == nil {
		return nil, fmt.Errorf("remote cart store required")
	}
	logg := p.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	observer := p.Observer
	if observer == nil {
		observer = noopObserver{}
	}
	return &Store{
		userID:   p.UserID,
		local:    p.Local,
		remote:   p.Remote,
		syncer:   NewSyncer(p.Remote, p.UserID, logg, observer),
		notifier: p.Notifier,
		observer: observer,
		logg:     logg,
		lines:    []Line{},
	}, nil
}

// UserID is the identity the remote cart is keyed by.
func (s *Store) UserID() string {
	return s.userID
}

// Hydrate populates the cart once: remote first, then the local fallback,
// then empty. It never fails; calls after the first are no-ops that return
// SourceNone.
func (s *Store) Hydrate(ctx context.Context) HydrationSource {
	s.mu.Lock()
	if s.state != StateUninitialized {
		s.mu.Unlock()
		return SourceNone
	}
	s.state = StateHydrating
	s.mu.Unlock()

	ctx = s.logg.WithUserID(ctx, s.userID)
	lines, source := s.loadInitial(ctx)

	s.mu.Lock()
	s.lines = lines
	s.state = StateReady
	s.mu.Unlock()

	s.observer.IncHydration(string(source))
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"source": source,
		"lines":  len(lines),
	}), "cart.hydrated")
	return source
}

func (s *Store) loadInitial(ctx context.Context) ([]Line, HydrationSource) {
	records, err := s.remote.FetchCart(ctx, s.userID)
	if err == nil {
		return Sanitize(records), SourceRemote
	}
	s.logg.WarnErr(ctx, "cart.hydrate.remote_failed, using local data", err)

	records, err = s.local.Load(ctx)
	if err != nil {
		s.logg.WarnErr(ctx, "cart.hydrate.local_failed, starting empty", err)
		return []Line{}, SourceEmpty
	}
	if len(records) == 0 {
		return []Line{}, SourceEmpty
	}
	return Sanitize(records), SourceLocal
}

// State reports the hydration state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Items returns a copy of the current lines in display order.
func (s *Store) Items() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLines(s.lines)
}

// Totals recomputes item count and price from the current lines.
func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeTotals(s.lines)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:  s.state,
		Items:  cloneLines(s.lines),
		Totals: ComputeTotals(s.lines),
	}
}

// AddItem adds one unit of the record's (id, size). The record's own
// quantity is ignored. Malformed records are rejected without changing the cart.
func (s *Store) AddItem(ctx context.Context, rec Record) (Notice, error) {
	line, ok := SanitizeRecord(rec)
	if !ok {
		return NoticeNone, malformed(rec)
	}
	line.Quantity = 1

	return s.mutate(ctx, func(lines []Line) ([]Line, Notice, syncKind) {
		for i := range lines {
			if lines[i].Key() == line.Key() {
				lines[i].Quantity++
				return lines, NoticeQuantityUpdated, syncPush
			}
		}
		return append(lines, line), NoticeAdded, syncPush
	})
}

// RemoveItem drops the (id, size) line. Removing an absent pair is a no-op.
func (s *Store) RemoveItem(ctx context.Context, id, size string) (Notice, error) {
	key := Key{ID: id, Size: size}
	return s.mutate(ctx, func(lines []Line) ([]Line, Notice, syncKind) {
		out := lines[:0]
		for _, line := range lines {
			if line.Key() != key {
				out = append(out, line)
			}
		}
		return out, NoticeRemoved, syncPush
	})
}

// UpdateQuantity sets the line's quantity; anything below one removes it.
func (s *Store) UpdateQuantity(ctx context.Context, id, size string, quantity int) (Notice, error) {
	if quantity < 1 {
		return s.RemoveItem(ctx, id, size)
	}
	key := Key{ID: id, Size: size}
	return s.mutate(ctx, func(lines []Line) ([]Line, Notice, syncKind) {
		for i := range lines {
			if lines[i].Key() == key {
				lines[i].Quantity = quantity
			}
		}
		return lines, NoticeNone, syncPush
	})
}

// ClearCart empties the cart immediately; the remote delete follows
// asynchronously and its failure never restores the items.
func (s *Store) ClearCart(ctx context.Context) (Notice, error) {
	return s.mutate(ctx, func([]Line) ([]Line, Notice, syncKind) {
		return []Line{}, NoticeCleared, syncClear
	})
}

// Close flushes pending remote writes and stops the sync worker.
func (s *Store) Close() {
	s.syncer.Close()
}

// Flush waits for detached remote writes scheduled so far.
func (s *Store) Flush(ctx context.Context) error {
	return s.syncer.Flush(ctx)
}

type syncKind int

const (
	syncPush syncKind = iota
	syncClear
)

func (s *Store) mutate(ctx context.Context, fn func([]Line) ([]Line, Notice, syncKind)) (Notice, error) {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return NoticeNone, ErrNotReady
	}

	next, notice, kind := fn(cloneLines(s.lines))
	s.lines = next
	snapshot := cloneLines(next)

	if err := s.local.Save(ctx, snapshot); err != nil {
		s.logg.WarnErr(ctx, "cart.persist.failed", pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "save cart"))
	}
	switch kind {
	case syncClear:
		s.syncer.Clear()
	default:
		s.syncer.Push(Records(snapshot))
	}
	s.mu.Unlock()

	if notice != NoticeNone && s.notifier != nil {
		s.notifier.Notify(ctx, notice)
	}
	return notice, nil
}
