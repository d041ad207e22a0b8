// Package syncbridge pushes the full repository state to the remote store,
// debounced so a burst of mutations produces exactly one push, and pulls the
// remote state on login. Durability is fire-and-forget: push failures are
// logged and dropped, and the next mutation's debounce cycle re-attempts.
package syncbridge

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/voyagecraft/concierge/backend/internal/domain"
	"github.com/voyagecraft/concierge/backend/pkg/metrics"
)

// DebounceWindow is how long the bridge waits after the last scheduled
// mutation before pushing. Every Schedule call resets the timer, so only a
// settled burst triggers a push.
const DebounceWindow = 800 * time.Millisecond

// pushTimeout bounds a single push attempt. There is no retry queue.
const pushTimeout = 10 * time.Second

// Client is the remote store transport. See HTTPClient for the production
// implementation.
type Client interface {
	Push(ctx context.Context, email string, state domain.State) error
	Pull(ctx context.Context, email string) (domain.StatePatch, error)
}

// Bridge owns the debounce timer. It is safe for concurrent use.
type Bridge struct {
	client  Client
	window  time.Duration
	log     *slog.Logger
	metrics *metrics.Metrics

	mu           sync.Mutex
	timer        *time.Timer
	pendingEmail string
	pendingState domain.State
	hasPending   bool
}

// New constructs a Bridge. window <= 0 selects DebounceWindow; tests pass a
// short window to exercise the debounce without waiting 800ms. m may be nil.
func New(client Client, window time.Duration, log *slog.Logger, m *metrics.Metrics) *Bridge {
	if window <= 0 {
		window = DebounceWindow
	}
	if log == nil {
		log = slog.Default()
	}
	return &Bridge{client: client, window: window, log: log, metrics: m}
}

// Schedule records the state to push for email and (re)starts the debounce
// timer. The newest state always wins; earlier scheduled states in the same
// window are discarded, which is correct because every state is a full
// snapshot.
func (b *Bridge) Schedule(email string, state domain.State) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pendingEmail = email
	b.pendingState = state
	b.hasPending = true
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.window, b.push)
}

// Flush pushes any pending state immediately, cancelling the timer. Called
// on graceful shutdown so a settled-but-unpushed burst is not lost.
func (b *Bridge) Flush() {
	b.mu.Lock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.mu.Unlock()
	b.push()
}

// Pull fetches the remote state for email. The caller decides how to merge
// (see store.MergeRemote).
func (b *Bridge) Pull(ctx context.Context, email string) (domain.StatePatch, error) {
	return b.client.Pull(ctx, email)
}

// push delivers the pending snapshot. Failures are swallowed: the in-memory
// state stays authoritative and a later mutation re-schedules.
func (b *Bridge) push() {
	b.mu.Lock()
	if !b.hasPending {
		b.mu.Unlock()
		return
	}
	email, state := b.pendingEmail, b.pendingState
	b.hasPending = false
	b.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	if b.metrics != nil {
		b.metrics.SyncPushes.Inc()
	}
	if err := b.client.Push(ctx, email, state); err != nil {
		if b.metrics != nil {
			b.metrics.SyncFailures.Inc()
		}
		b.log.Warn("remote sync push failed", "email", email, "error", err)
	}
}
