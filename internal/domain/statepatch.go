package domain

// StatePatch is a per-table replacement payload produced from a remote pull.
// A nil table means "absent or malformed in the remote payload — keep the
// in-memory value". Present tables replace the local ones wholesale; this is
// a remote-wins-per-field merge, never a deep merge.
type StatePatch struct {
	Trips      *[]Trip
	Messages   *map[string][]Message
	Snapshots  *map[string]Snapshot
	Drafts     *map[string]TripDraft
	Proposals  *map[string]Proposal
	Selections *map[string]Selection
}

// Empty reports whether the patch carries no tables at all.
func (p StatePatch) Empty() bool {
	return p.Trips == nil && p.Messages == nil && p.Snapshots == nil &&
		p.Drafts == nil && p.Proposals == nil && p.Selections == nil
}
