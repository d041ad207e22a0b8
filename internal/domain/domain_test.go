package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagecraft/concierge/backend/internal/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// ---- TripDraft.Apply -------------------------------------------------------

// TestDraftApply_MergesOnlyProvidedFields verifies that a sparse patch
// touches exactly the fields it names and records itself under LastPatch.
func TestDraftApply_MergesOnlyProvidedFields(t *testing.T) {
	draft := domain.TripDraft{Destination: "Lisbon", Adults: 2}

	draft.Apply(domain.DraftPatch{Budget: strPtr("8000")})

	assert.Equal(t, "Lisbon", draft.Destination, "unpatched field must survive")
	assert.Equal(t, 2, draft.Adults)
	assert.Equal(t, "8000", draft.Budget)
	require.NotNil(t, draft.LastPatch)
	assert.Equal(t, "8000", *draft.LastPatch.Budget)
}

// TestDraftApply_ExplicitZeroClears verifies the distinction between "not
// provided" (nil pointer) and "set to zero" (pointer to zero value).
func TestDraftApply_ExplicitZeroClears(t *testing.T) {
	draft := domain.TripDraft{Notes: "bring snorkels", Adults: 4}

	draft.Apply(domain.DraftPatch{Notes: strPtr(""), Adults: intPtr(0)})

	assert.Empty(t, draft.Notes)
	assert.Zero(t, draft.Adults)
}

// TestDraftApply_LastPatchReplacedEachTime verifies that LastPatch reflects
// only the most recent patch, not an accumulation.
func TestDraftApply_LastPatchReplacedEachTime(t *testing.T) {
	var draft domain.TripDraft

	draft.Apply(domain.DraftPatch{Destination: strPtr("Kyoto")})
	draft.Apply(domain.DraftPatch{Style: strPtr("slow travel")})

	require.NotNil(t, draft.LastPatch)
	assert.Nil(t, draft.LastPatch.Destination)
	assert.Equal(t, "slow travel", *draft.LastPatch.Style)
	assert.Equal(t, "Kyoto", draft.Destination, "earlier patch's effect must persist")
}

// ---- Selection.Apply -------------------------------------------------------

// TestSelectionApply_SparseMerge verifies that a nil patch slot keeps the
// previous value: callers update one slot without resupplying the others.
func TestSelectionApply_SparseMerge(t *testing.T) {
	sel := domain.Selection{
		Flight: domain.SelectionItem{"carrier": "TAP", "price": "740"},
		Hotel:  domain.SelectionItem{"name": "Palácio Estoril"},
	}

	sel.Apply(domain.SelectionPatch{Hotel: domain.SelectionItem{"name": "Six Senses Douro"}})

	assert.Equal(t, "TAP", sel.Flight["carrier"], "flight slot must be untouched")
	assert.Equal(t, "Six Senses Douro", sel.Hotel["name"])
	assert.Nil(t, sel.Activity)
	assert.Nil(t, sel.Transfer)
}

// ---- Snapshot --------------------------------------------------------------

// TestNewSnapshot_SeedsAllKeys verifies every seed key exists (defaulted to
// the empty string) so UI surfaces can render a stable set of rows.
func TestNewSnapshot_SeedsAllKeys(t *testing.T) {
	s := domain.NewSnapshot(domain.Snapshot{"destination": "Paris"})

	assert.Equal(t, "Paris", s["destination"])
	for _, k := range domain.SnapshotKeys {
		_, ok := s[k]
		assert.True(t, ok, "seed key %q missing", k)
	}
}

// TestSnapshotMerge_Shallow verifies that sequential patches accumulate and
// never drop unrelated fields.
func TestSnapshotMerge_Shallow(t *testing.T) {
	s := domain.NewSnapshot(nil)

	s.Merge(domain.Snapshot{"destination": "Paris"})
	s.Merge(domain.Snapshot{"budget": "5000"})

	assert.Equal(t, "Paris", s["destination"])
	assert.Equal(t, "5000", s["budget"])
}

// ---- State -----------------------------------------------------------------

// TestStateClone_Independent verifies that mutating a clone never reaches
// the original tables — the property subscriber isolation relies on.
func TestStateClone_Independent(t *testing.T) {
	state := domain.NewState()
	state.Trips = append(state.Trips, domain.Trip{ID: "t1", Title: "Original"})
	state.Snapshots["t1"] = domain.Snapshot{"destination": "Oslo"}
	state.Selections["t1"] = domain.Selection{Flight: domain.SelectionItem{"price": "100"}}

	clone := state.Clone()
	clone.Trips[0].Title = "Changed"
	clone.Snapshots["t1"]["destination"] = "Bergen"
	clone.Selections["t1"].Flight["price"] = "999"

	assert.Equal(t, "Original", state.Trips[0].Title)
	assert.Equal(t, "Oslo", state.Snapshots["t1"]["destination"])
	assert.Equal(t, "100", state.Selections["t1"].Flight["price"])
}

// TestStateJSONRoundTrip_NormalizesTables verifies that a payload with
// missing tables deserializes into a usable state after Normalize.
func TestStateJSONRoundTrip_NormalizesTables(t *testing.T) {
	var state domain.State
	require.NoError(t, json.Unmarshal([]byte(`{"trips":[{"id":"t1"}]}`), &state))

	state.Normalize()

	require.Len(t, state.Trips, 1)
	assert.NotNil(t, state.Messages)
	assert.NotNil(t, state.Selections)
}

// ---- NewID -----------------------------------------------------------------

// TestNewID_Unique generates a batch of ids and checks for collisions.
func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id := domain.NewID()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}
