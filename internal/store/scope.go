package store

import (
	"context"
	"strings"

	"github.com/voyagecraft/concierge/backend/internal/domain"
)

// NormalizeScope maps a caller-supplied identity (an email, or empty for a
// signed-out visitor) to its partition scope: trimmed, lower-cased, and
// defaulted to GuestScope.
func NormalizeScope(identity string) string {
	scope := strings.ToLower(strings.TrimSpace(identity))
	if scope == "" {
		return GuestScope
	}
	return scope
}

// UseScope switches the active storage partition to the one matching
// identity. The whole in-memory state is replaced by the partition's
// persisted content (or pristine defaults) — never merged across partitions.
// Subscribers are notified exactly once, after the swap. Switching to the
// already-active scope is a no-op with no notification.
//
// Scope swaps happen between discrete mutations, never concurrently with
// one: the store mutex serializes them against apply.
func (s *Store) UseScope(ctx context.Context, identity string) {
	scope := NormalizeScope(identity)

	s.mu.Lock()
	if scope == s.scope {
		s.mu.Unlock()
		return
	}
	next := s.loadPartition(ctx, scope)
	s.scope = scope
	if scope == GuestScope {
		s.remote = ""
	} else {
		s.remote = scope
	}
	s.state = next
	snapshot := s.state.Clone()
	subs := append([]subscription(nil), s.subs...)
	s.mu.Unlock()

	s.log.Info("storage scope switched", "scope", scope)
	for _, sub := range subs {
		sub.fn(snapshot)
	}
}

// MergeRemote applies a pulled remote payload: each table present in the
// patch replaces the in-memory one wholesale, absent or malformed tables
// keep their local value. The merged state runs through the normal mutation
// path, so it is persisted and observers see it once.
func (s *Store) MergeRemote(ctx context.Context, patch domain.StatePatch) {
	if patch.Empty() {
		return
	}
	s.apply(ctx, func(state *domain.State) {
		if patch.Trips != nil {
			state.Trips = *patch.Trips
		}
		if patch.Messages != nil {
			state.Messages = *patch.Messages
		}
		if patch.Snapshots != nil {
			state.Snapshots = *patch.Snapshots
		}
		if patch.Drafts != nil {
			state.Drafts = *patch.Drafts
		}
		if patch.Proposals != nil {
			state.Proposals = *patch.Proposals
		}
		if patch.Selections != nil {
			state.Selections = *patch.Selections
		}
		state.Normalize()
	})
}

// RemoteIdentity returns the identity remote syncs are keyed by, or the
// empty string when the active scope is guest.
func (s *Store) RemoteIdentity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remote
}
