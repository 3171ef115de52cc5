package cart

import (
	"context"
	"sync"
	"time"

	"github.com/teetribe/teetribe-backend/pkg/logger"
)

const (
	OpPush  = "push"
	OpClear = "clear"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

type syncOp struct {
	kind  string
	items []Record
	gen   uint64
}

// Syncer runs remote cart writes detached from the mutation that caused
// them. A single worker executes operations one at a time and only ever
// sends the newest pending snapshot, so the remote cart converges on the last
// local mutation. Failures are logged and counted, never retried.
type Syncer struct {
	remote   RemoteStore
	userID   string
	logg     *logger.Logger
	observer Observer

	mu       sync.Mutex
	pending  *syncOp
	gen      uint64
	doneGen  uint64
	progress chan struct{}
	closed   bool

	wake chan struct{}
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewSyncer starts the worker goroutine; Close stops it.
func NewSyncer(remote RemoteStore, userID string, logg *logger.Logger, observer Observer) *Syncer {
	if logg == nil {
		logg = logger.Nop()
	}
	if observer == nil {
		observer = noopObserver{}
	}
	s := &Syncer{
		remote:   remote,
		userID:   userID,
		logg:     logg,
		observer: observer,
		progress: make(chan struct{}),
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

// Push schedules a full-state write. It never blocks on the network.
func (s *Syncer) Push(items []Record) {
	s.enqueue(OpPush, items)
}

// Clear schedules a remote delete.
func (s *Syncer) Clear() {
	s.enqueue(OpClear, nil)
}

func (s *Syncer) enqueue(kind string, items []Record) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.gen++
	if s.pending != nil {
		s.observer.IncSyncDropped()
	}
	s.pending = &syncOp{kind: kind, items: items, gen: s.gen}
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every operation enqueued before the call has either
// been sent or superseded by a newer one.
func (s *Syncer) Flush(ctx context.Context) error {
	s.mu.Lock()
	target := s.gen
	for s.doneGen < target {
		ch := s.progress
		s.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
		s.mu.Lock()
	}
	s.mu.Unlock()
	return nil
}

// Close stops accepting work, sends whatever is still pending and waits for
// the worker to exit.
func (s *Syncer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	close(s.stop)
	s.wg.Wait()
}

func (s *Syncer) run() {
	defer s.wg.Done()
	for {
		select {
		case <-s.wake:
			s.drain()
		case <-s.stop:
			s.drain()
			return
		}
	}
}

func (s *Syncer) drain() {
	for {
		s.mu.Lock()
		op := s.pending
		s.pending = nil
		s.mu.Unlock()
		if op == nil {
			return
		}
		s.execute(op)
	}
}

func (s *Syncer) execute(op *syncOp) {
	ctx := s.logg.WithFields(context.Background(), map[string]any{
		"user_id":  s.userID,
		"sync_op":  op.kind,
		"sync_gen": op.gen,
	})
	start := time.Now()

	var err error
	switch op.kind {
	case OpClear:
		err = s.remote.ClearCart(ctx, s.userID)
	default:
		err = s.remote.PushCart(ctx, s.userID, op.items)
	}

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
		s.logg.WarnErr(ctx, "cart.sync.failed", err)
	} else {
		s.logg.Debug(ctx, "cart.sync.sent")
	}
	s.observer.ObserveSync(op.kind, outcome, time.Since(start))

	s.mu.Lock()
	if op.gen > s.doneGen {
		s.doneGen = op.gen
	}
	close(s.progress)
	s.progress = make(chan struct{})
	s.mu.Unlock()
}
