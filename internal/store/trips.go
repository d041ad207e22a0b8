package store

import (
	"context"
	"fmt"
	"time"

	"github.com/voyagecraft/concierge/backend/internal/domain"
)

// DefaultTripTitle is used when a trip is created without an explicit title.
const DefaultTripTitle = "New Trip"

// TripInit seeds a newly created trip. Title falls back to DefaultTripTitle;
// Snapshot values are copied onto the seeded snapshot keys.
type TripInit struct {
	Title    string          `json:"title,omitempty"`
	Snapshot domain.Snapshot `json:"snapshot,omitempty"`
}

// CreateTrip allocates an id and inserts a new trip at the head of the trip
// list, together with its empty message list and seeded snapshot.
func (s *Store) CreateTrip(ctx context.Context, init TripInit) string {
	id := domain.NewID()
	s.apply(ctx, func(state *domain.State) {
		insertTrip(state, id, init)
	})
	return id
}

// EnsureTrip returns tripID unchanged when the trip exists; otherwise it
// creates the trip (with the supplied id, or a generated one when empty) so
// no dependent record is ever written without its parent.
func (s *Store) EnsureTrip(ctx context.Context, tripID string) string {
	s.mu.Lock()
	exists := tripID != "" && s.state.FindTrip(tripID) != nil
	s.mu.Unlock()
	if exists {
		return tripID
	}

	if tripID == "" {
		tripID = domain.NewID()
	}
	s.apply(ctx, func(state *domain.State) {
		ensureTrip(state, tripID)
	})
	return tripID
}

// EnsureSeedTrip returns the first trip's id, creating a seeded default trip
// when the repository is empty. Consumers call this on first page load so
// the planner always has a trip to attach to.
func (s *Store) EnsureSeedTrip(ctx context.Context) string {
	s.mu.Lock()
	if len(s.state.Trips) > 0 {
		id := s.state.Trips[0].ID
		s.mu.Unlock()
		return id
	}
	s.mu.Unlock()

	return s.CreateTrip(ctx, TripInit{
		Title: "Mediterranean Escape",
		Snapshot: domain.Snapshot{
			"destination": "Amalfi Coast",
			"travelers":   "2",
			"style":       "Relaxed luxury",
		},
	})
}

// AddMessage appends a chat message to the trip and refreshes the trip's
// LastMessage preview and UpdatedAt. The trip is created if absent.
func (s *Store) AddMessage(ctx context.Context, tripID, role, content string) (domain.Message, error) {
	if role == "" {
		return domain.Message{}, fmt.Errorf("store.Store.AddMessage: %w: role is required", domain.ErrValidation)
	}

	msg := domain.Message{
		ID:        domain.NewID(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	s.apply(ctx, func(state *domain.State) {
		id := ensureTrip(state, tripID)
		state.Messages[id] = append(state.Messages[id], msg)
		trip := state.FindTrip(id)
		trip.LastMessage = truncate(content, domain.LastMessageLimit)
		trip.UpdatedAt = msg.CreatedAt
	})
	return msg, nil
}

// UpdateSnapshot shallow-merges patch onto the trip's snapshot. Fields not
// named in the patch are never dropped.
func (s *Store) UpdateSnapshot(ctx context.Context, tripID string, patch domain.Snapshot) {
	s.apply(ctx, func(state *domain.State) {
		id := ensureTrip(state, tripID)
		snap := state.Snapshots[id]
		if snap == nil {
			// A trip hydrated from a sparse remote payload may lack its snapshot row.
			snap = domain.NewSnapshot(nil)
			state.Snapshots[id] = snap
		}
		snap.Merge(patch)
		state.FindTrip(id).UpdatedAt = time.Now().UTC()
	})
}

// ApplyTripPatch merge-patches the trip's draft and records the patch (with
// a timestamp) under the draft's LastPatch for observability.
func (s *Store) ApplyTripPatch(ctx context.Context, tripID string, patch domain.DraftPatch) {
	patch.Timestamp = time.Now().UTC()
	s.apply(ctx, func(state *domain.State) {
		id := ensureTrip(state, tripID)
		draft := state.Drafts[id]
		draft.Apply(patch)
		state.Drafts[id] = draft
		state.FindTrip(id).UpdatedAt = patch.Timestamp
	})
}

// UpdateTrip applies the non-nil fields of patch directly to the trip
// record. Status values are not validated: partner-facing subsystems write
// their own states through the same field.
func (s *Store) UpdateTrip(ctx context.Context, tripID string, patch domain.TripPatch) {
	s.apply(ctx, func(state *domain.State) {
		id := ensureTrip(state, tripID)
		trip := state.FindTrip(id)
		if patch.Title != nil {
			trip.Title = *patch.Title
		}
		if patch.Status != nil {
			trip.Status = *patch.Status
		}
		trip.UpdatedAt = time.Now().UTC()
	})
}

// SetTripTitle sets the trip's title.
func (s *Store) SetTripTitle(ctx context.Context, tripID, title string) {
	s.UpdateTrip(ctx, tripID, domain.TripPatch{Title: &title})
}

// SetTripStatus sets the trip's status string.
func (s *Store) SetTripStatus(ctx context.Context, tripID, status string) {
	s.UpdateTrip(ctx, tripID, domain.TripPatch{Status: &status})
}

// SetProposalSelection sparse-merges patch onto the trip's selection. A nil
// patch field keeps the previous value, so callers update one slot at a time
// without resupplying the other three.
func (s *Store) SetProposalSelection(ctx context.Context, tripID string, patch domain.SelectionPatch) {
	s.apply(ctx, func(state *domain.State) {
		id := ensureTrip(state, tripID)
		sel := state.Selections[id]
		sel.Apply(patch)
		state.Selections[id] = sel
	})
}

// EnsureSelection makes sure a selection record (all slots empty) exists for
// the trip. The proposal generator calls this so observers can bind to a
// selection as soon as a proposal exists.
func (s *Store) EnsureSelection(ctx context.Context, tripID string) {
	s.apply(ctx, func(state *domain.State) {
		id := ensureTrip(state, tripID)
		if _, ok := state.Selections[id]; !ok {
			state.Selections[id] = domain.Selection{}
		}
	})
}

// SetSelectionActivities replaces the trip's enrichment activities list.
// Concurrent enrichment runs for the same trip follow last-writer-wins on
// this field alone; the four chosen slots are untouched.
func (s *Store) SetSelectionActivities(ctx context.Context, tripID string, activities []domain.SelectionItem) {
	s.apply(ctx, func(state *domain.State) {
		id := ensureTrip(state, tripID)
		sel := state.Selections[id]
		sel.Activities = activities
		state.Selections[id] = sel
	})
}

// SetSelectionTransfers replaces the trip's enrichment transfers list.
func (s *Store) SetSelectionTransfers(ctx context.Context, tripID string, transfers []domain.SelectionItem) {
	s.apply(ctx, func(state *domain.State) {
		id := ensureTrip(state, tripID)
		sel := state.Selections[id]
		sel.Transfers = transfers
		state.Selections[id] = sel
	})
}

// SetProposal replaces the trip's proposal wholesale. A prior proposal for
// the trip is superseded, never merged.
func (s *Store) SetProposal(ctx context.Context, tripID string, proposal domain.Proposal) {
	s.apply(ctx, func(state *domain.State) {
		id := ensureTrip(state, tripID)
		proposal.TripID = id
		state.Proposals[id] = proposal
	})
}

// DeleteTrip removes the trip and every record attached to its id. Deleting
// an unknown id is a no-op; other trips' records are never affected.
func (s *Store) DeleteTrip(ctx context.Context, tripID string) {
	s.mu.Lock()
	exists := s.state.FindTrip(tripID) != nil
	s.mu.Unlock()
	if !exists {
		return
	}

	s.apply(ctx, func(state *domain.State) {
		for i := range state.Trips {
			if state.Trips[i].ID == tripID {
				state.Trips = append(state.Trips[:i], state.Trips[i+1:]...)
				break
			}
		}
		delete(state.Messages, tripID)
		delete(state.Snapshots, tripID)
		delete(state.Drafts, tripID)
		delete(state.Proposals, tripID)
		delete(state.Selections, tripID)
	})
}

// ClearStore resets the active partition to a pristine state.
func (s *Store) ClearStore(ctx context.Context) {
	s.apply(ctx, func(state *domain.State) {
		*state = domain.NewState()
	})
}

// Proposal returns the trip's proposal.
// Returns domain.ErrNotFound when no proposal has been generated.
func (s *Store) Proposal(tripID string) (domain.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prop, ok := s.state.Proposals[tripID]
	if !ok {
		return domain.Proposal{}, fmt.Errorf("store.Store.Proposal: %w", domain.ErrNotFound)
	}
	return prop.Clone(), nil
}

// Selection returns the trip's selection, or an empty selection when none
// has been recorded yet.
func (s *Store) Selection(tripID string) domain.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Selections[tripID].Clone()
}

// Draft returns the trip's draft, or a zero draft when none exists.
func (s *Store) Draft(tripID string) domain.TripDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Drafts[tripID].Clone()
}

// Trip returns the trip record.
// Returns domain.ErrNotFound when the trip does not exist.
func (s *Store) Trip(tripID string) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	trip := s.state.FindTrip(tripID)
	if trip == nil {
		return domain.Trip{}, fmt.Errorf("store.Store.Trip: %w", domain.ErrNotFound)
	}
	return *trip, nil
}

// insertTrip creates a trip with the given id at the head of the list
// (most-recent-first ordering, which list surfaces rely on), plus its empty
// message list and seeded snapshot.
func insertTrip(state *domain.State, id string, init TripInit) {
	title := init.Title
	if title == "" {
		title = DefaultTripTitle
	}
	now := time.Now().UTC()
	trip := domain.Trip{
		ID:        id,
		Title:     title,
		Status:    domain.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	state.Trips = append([]domain.Trip{trip}, state.Trips...)
	state.Messages[id] = []domain.Message{}
	state.Snapshots[id] = domain.NewSnapshot(init.Snapshot)
}

// ensureTrip creates the trip in place when it is absent and returns its id.
// Every dependent-record write goes through here, which is what guarantees
// the no-orphan invariant.
func ensureTrip(state *domain.State, id string) string {
	if id == "" {
		id = domain.NewID()
	}
	if state.FindTrip(id) == nil {
		insertTrip(state, id, TripInit{})
	}
	return id
}

// truncate limits s to n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
