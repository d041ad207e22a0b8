package domain

// State is the full repository content for one storage scope. It is what
// gets persisted to the local partition on every mutation and pushed, as a
// whole, to the remote sync endpoint. The JSON shape is the wire contract
// shared with the remote store — field names must stay stable.
type State struct {
	Trips      []Trip               `json:"trips"`
	Messages   map[string][]Message `json:"messages"`
	Snapshots  map[string]Snapshot  `json:"snapshots"`
	Drafts     map[string]TripDraft `json:"tripDrafts"`
	Proposals  map[string]Proposal  `json:"proposals"`
	Selections map[string]Selection `json:"selections"`
}

// NewState returns an empty repository state with all tables initialized.
func NewState() State {
	return State{
		Trips:      []Trip{},
		Messages:   map[string][]Message{},
		Snapshots:  map[string]Snapshot{},
		Drafts:     map[string]TripDraft{},
		Proposals:  map[string]Proposal{},
		Selections: map[string]Selection{},
	}
}

// Normalize replaces nil tables with empty ones. Deserialized payloads (from
// the local partition or a remote pull) may omit tables entirely; the rest of
// the core assumes every table is non-nil.
func (s *State) Normalize() {
	if s.Trips == nil {
		s.Trips = []Trip{}
	}
	if s.Messages == nil {
		s.Messages = map[string][]Message{}
	}
	if s.Snapshots == nil {
		s.Snapshots = map[string]Snapshot{}
	}
	if s.Drafts == nil {
		s.Drafts = map[string]TripDraft{}
	}
	if s.Proposals == nil {
		s.Proposals = map[string]Proposal{}
	}
	if s.Selections == nil {
		s.Selections = map[string]Selection{}
	}
}

// FindTrip returns a pointer into the Trips slice for the given id, or nil.
// Only the store may use the pointer to mutate; everyone else works on clones.
func (s *State) FindTrip(id string) *Trip {
	for i := range s.Trips {
		if s.Trips[i].ID == id {
			return &s.Trips[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the state. Subscribers and read APIs only
// ever see clones, so no caller can reach into the store's live tables.
func (s State) Clone() State {
	out := State{
		Trips:      append([]Trip(nil), s.Trips...),
		Messages:   make(map[string][]Message, len(s.Messages)),
		Snapshots:  make(map[string]Snapshot, len(s.Snapshots)),
		Drafts:     make(map[string]TripDraft, len(s.Drafts)),
		Proposals:  make(map[string]Proposal, len(s.Proposals)),
		Selections: make(map[string]Selection, len(s.Selections)),
	}
	for id, msgs := range s.Messages {
		out.Messages[id] = append([]Message(nil), msgs...)
	}
	for id, snap := range s.Snapshots {
		out.Snapshots[id] = snap.Clone()
	}
	for id, draft := range s.Drafts {
		out.Drafts[id] = draft.Clone()
	}
	for id, prop := range s.Proposals {
		out.Proposals[id] = prop.Clone()
	}
	for id, sel := range s.Selections {
		out.Selections[id] = sel.Clone()
	}
	return out
}
