// Package store implements the trip repository: the in-memory table of trips
// and their attached records, the single mutation choke point that persists
// and notifies, and the scope manager that swaps storage partitions when the
// signed-in identity changes.
//
// Mutations never fail for persistence or sync reasons. The in-memory state
// is authoritative; partition writes and remote pushes are best-effort.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/voyagecraft/concierge/backend/internal/domain"
	"github.com/voyagecraft/concierge/backend/internal/kv"
	"github.com/voyagecraft/concierge/backend/pkg/metrics"
)

// GuestScope is the partition scope used when no identity is signed in.
const GuestScope = "guest"

// Syncer schedules a debounced push of the full state to the remote store.
// Schedule must return immediately; the push happens after the debounce
// window elapses with no further calls.
type Syncer interface {
	Schedule(email string, state domain.State)
}

// Subscriber receives a deep copy of the repository state after every
// mutation and after every scope swap.
type Subscriber func(domain.State)

type subscription struct {
	id int
	fn Subscriber
}

// Store owns one scope's repository state. All mutations funnel through
// apply, which persists the full state to the active partition, schedules a
// debounced remote sync, and notifies subscribers in subscription order.
type Store struct {
	kv      kv.Store
	prefix  string
	log     *slog.Logger
	metrics *metrics.Metrics

	mu     sync.Mutex
	state  domain.State
	scope  string // active partition scope, always non-empty
	remote string // identity for remote sync, empty when guest
	syncer Syncer // nil disables remote sync entirely

	subs   []subscription
	nextID int
}

// New constructs a Store on the guest partition, hydrating from whatever the
// backing store holds for it. syncer and m may be nil.
func New(ctx context.Context, backing kv.Store, prefix string, syncer Syncer, log *slog.Logger, m *metrics.Metrics) *Store {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{
		kv:      backing,
		prefix:  prefix,
		log:     log,
		metrics: m,
		scope:   GuestScope,
		syncer:  syncer,
	}
	s.state = s.loadPartition(ctx, GuestScope)
	return s
}

// State returns a deep copy of the current repository state.
func (s *Store) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Scope returns the active partition scope.
func (s *Store) Scope() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

// Subscribe registers fn for change notification and returns its cancel
// function. Subscribers are called synchronously from the mutating
// goroutine, in subscription order, with a state clone.
func (s *Store) Subscribe(fn Subscriber) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// apply is the single mutation choke point: (a) run mutate against the live
// state, (b) persist the full state to the active partition, (c) schedule a
// debounced remote sync when an identity is set, (d) notify subscribers.
// Persistence failures are swallowed — the in-memory state stays
// authoritative and the caller never sees an error.
func (s *Store) apply(ctx context.Context, mutate func(state *domain.State)) {
	s.mu.Lock()
	mutate(&s.state)
	if s.metrics != nil {
		s.metrics.Mutations.Inc()
	}
	s.persistLocked(ctx)
	if s.syncer != nil && s.remote != "" {
		s.syncer.Schedule(s.remote, s.state.Clone())
	}
	snapshot := s.state.Clone()
	subs := append([]subscription(nil), s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snapshot)
	}
}

// persistLocked writes the full state snapshot to the active partition.
// Callers must hold s.mu. Failures are logged and dropped.
func (s *Store) persistLocked(ctx context.Context) {
	raw, err := json.Marshal(s.state)
	if err == nil {
		err = s.kv.Set(ctx, s.partitionKey(s.scope), raw)
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.PersistFailures.Inc()
		}
		s.log.Warn("partition write failed, keeping in-memory state", "scope", s.scope, "error", err)
	}
}

// loadPartition reads and deserializes the state stored for scope, falling
// back to a pristine state on any read or decode failure.
func (s *Store) loadPartition(ctx context.Context, scope string) domain.State {
	raw, found, err := s.kv.Get(ctx, s.partitionKey(scope))
	if err != nil {
		s.log.Warn("partition read failed, starting from defaults", "scope", scope, "error", err)
		return domain.NewState()
	}
	if !found {
		return domain.NewState()
	}
	var state domain.State
	if err := json.Unmarshal(raw, &state); err != nil {
		s.log.Warn("partition payload malformed, starting from defaults", "scope", scope, "error", err)
		return domain.NewState()
	}
	state.Normalize()
	return state
}

func (s *Store) partitionKey(scope string) string {
	return s.prefix + "__" + scope
}
