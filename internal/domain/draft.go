package domain

import "time"

// Snapshot is the free-form key/value summary of a trip's intent shown in
// lightweight UI surfaces. It is merged on update, never replaced, so an
// unrelated patch can never drop a previously set field.
type Snapshot map[string]string

// SnapshotKeys are the fields seeded (as empty strings) when a trip is
// created, so every snapshot renders a stable set of summary rows.
var SnapshotKeys = []string{"departure", "destination", "dates", "travelers", "budget", "style"}

// NewSnapshot returns a snapshot with every seed key set to the value from
// init when present, otherwise the empty string.
func NewSnapshot(init Snapshot) Snapshot {
	s := make(Snapshot, len(SnapshotKeys))
	for _, k := range SnapshotKeys {
		s[k] = init[k]
	}
	return s
}

// Merge copies every key from patch onto the snapshot (shallow merge).
func (s Snapshot) Merge(patch Snapshot) {
	for k, v := range patch {
		s[k] = v
	}
}

// Clone returns an independent copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// TripDraft is the structured planning intent driving proposal generation
// and pricing. No field is required: every consumer treats the zero value as
// "not provided" and applies its own domain default.
type TripDraft struct {
	DepartureCity      string      `json:"departureCity,omitempty"`
	Destination        string      `json:"destination,omitempty"`
	CheckIn            string      `json:"checkIn,omitempty"`
	CheckOut           string      `json:"checkOut,omitempty"`
	Adults             int         `json:"adults,omitempty"`
	ChildrenAges       []int       `json:"childrenAges,omitempty"`
	Budget             string      `json:"budget,omitempty"`
	Currency           string      `json:"currency,omitempty"`
	AccommodationType  string      `json:"accommodationType,omitempty"`
	TransportationType string      `json:"transportationType,omitempty"`
	Style              string      `json:"style,omitempty"`
	Notes              string      `json:"notes,omitempty"`
	Status             string      `json:"status,omitempty"`
	IncludeActivities  bool        `json:"includeActivities,omitempty"`
	IncludeTransfers   bool        `json:"includeTransfers,omitempty"`
	LastPatch          *DraftPatch `json:"lastPatch,omitempty"`
}

// DraftPatch is a sparse merge-patch for a TripDraft. Nil pointers mean
// "leave unchanged" — distinct from a pointer to a zero value, which means
// "set to empty". Timestamp is stamped by the repository when applied, so
// the most recent patch is observable on the draft afterwards.
type DraftPatch struct {
	DepartureCity      *string   `json:"departureCity,omitempty"`
	Destination        *string   `json:"destination,omitempty"`
	CheckIn            *string   `json:"checkIn,omitempty"`
	CheckOut           *string   `json:"checkOut,omitempty"`
	Adults             *int      `json:"adults,omitempty"`
	ChildrenAges       *[]int    `json:"childrenAges,omitempty"`
	Budget             *string   `json:"budget,omitempty"`
	Currency           *string   `json:"currency,omitempty"`
	AccommodationType  *string   `json:"accommodationType,omitempty"`
	TransportationType *string   `json:"transportationType,omitempty"`
	Style              *string   `json:"style,omitempty"`
	Notes              *string   `json:"notes,omitempty"`
	Status             *string   `json:"status,omitempty"`
	IncludeActivities  *bool     `json:"includeActivities,omitempty"`
	IncludeTransfers   *bool     `json:"includeTransfers,omitempty"`
	Timestamp          time.Time `json:"timestamp"`
}

// Apply merges the non-nil fields of patch onto the draft and records the
// patch itself (with its timestamp) under LastPatch for observability.
func (d *TripDraft) Apply(patch DraftPatch) {
	if patch.DepartureCity != nil {
		d.DepartureCity = *patch.DepartureCity
	}
	if patch.Destination != nil {
		d.Destination = *patch.Destination
	}
	if patch.CheckIn != nil {
		d.CheckIn = *patch.CheckIn
	}
	if patch.CheckOut != nil {
		d.CheckOut = *patch.CheckOut
	}
	if patch.Adults != nil {
		d.Adults = *patch.Adults
	}
	if patch.ChildrenAges != nil {
		d.ChildrenAges = append([]int(nil), (*patch.ChildrenAges)...)
	}
	if patch.Budget != nil {
		d.Budget = *patch.Budget
	}
	if patch.Currency != nil {
		d.Currency = *patch.Currency
	}
	if patch.AccommodationType != nil {
		d.AccommodationType = *patch.AccommodationType
	}
	if patch.TransportationType != nil {
		d.TransportationType = *patch.TransportationType
	}
	if patch.Style != nil {
		d.Style = *patch.Style
	}
	if patch.Notes != nil {
		d.Notes = *patch.Notes
	}
	if patch.Status != nil {
		d.Status = *patch.Status
	}
	if patch.IncludeActivities != nil {
		d.IncludeActivities = *patch.IncludeActivities
	}
	if patch.IncludeTransfers != nil {
		d.IncludeTransfers = *patch.IncludeTransfers
	}
	d.LastPatch = &patch
}

// Clone returns an independent copy of the draft.
func (d TripDraft) Clone() TripDraft {
	out := d
	out.ChildrenAges = append([]int(nil), d.ChildrenAges...)
	if d.LastPatch != nil {
		lp := *d.LastPatch
		out.LastPatch = &lp
	}
	return out
}
