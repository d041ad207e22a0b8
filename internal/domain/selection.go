package domain

// SelectionItem is one concretely chosen option (a flight, hotel, activity
// or transfer) in the partner API's own shape, stored verbatim. Pricing only
// ever reads the "price" key; everything else passes through untouched.
type SelectionItem map[string]any

// Clone returns an independent shallow copy of the item. Nested values are
// partner payloads the core never mutates, so a shallow copy is sufficient.
func (i SelectionItem) Clone() SelectionItem {
	if i == nil {
		return nil
	}
	out := make(SelectionItem, len(i))
	for k, v := range i {
		out[k] = v
	}
	return out
}

// Price returns the raw value under the item's "price" key, or nil when the
// item is absent or unpriced.
func (i SelectionItem) Price() any {
	if i == nil {
		return nil
	}
	return i["price"]
}

// Selection holds the chosen options for a trip's proposal. Each field is
// independently nullable; Activities and Transfers carry enrichment results
// fetched from partner search services, stored verbatim.
type Selection struct {
	Flight     SelectionItem   `json:"flight"`
	Hotel      SelectionItem   `json:"hotel"`
	Activity   SelectionItem   `json:"activity"`
	Transfer   SelectionItem   `json:"transfer"`
	Activities []SelectionItem `json:"activities,omitempty"`
	Transfers  []SelectionItem `json:"transfers,omitempty"`
}

// SelectionPatch is a sparse update to a Selection. A nil field means "keep
// the previous value" — callers update one slot at a time without resupplying
// the other three. There is no way to clear a slot through a patch; clearing
// only happens when the whole trip is deleted.
type SelectionPatch struct {
	Flight   SelectionItem `json:"flight"`
	Hotel    SelectionItem `json:"hotel"`
	Activity SelectionItem `json:"activity"`
	Transfer SelectionItem `json:"transfer"`
}

// Apply merges the non-nil fields of patch onto the selection.
func (s *Selection) Apply(patch SelectionPatch) {
	if patch.Flight != nil {
		s.Flight = patch.Flight
	}
	if patch.Hotel != nil {
		s.Hotel = patch.Hotel
	}
	if patch.Activity != nil {
		s.Activity = patch.Activity
	}
	if patch.Transfer != nil {
		s.Transfer = patch.Transfer
	}
}

// Clone returns an independent copy of the selection.
func (s Selection) Clone() Selection {
	out := Selection{
		Flight:   s.Flight.Clone(),
		Hotel:    s.Hotel.Clone(),
		Activity: s.Activity.Clone(),
		Transfer: s.Transfer.Clone(),
	}
	if s.Activities != nil {
		out.Activities = make([]SelectionItem, len(s.Activities))
		for i, it := range s.Activities {
			out.Activities[i] = it.Clone()
		}
	}
	if s.Transfers != nil {
		out.Transfers = make([]SelectionItem, len(s.Transfers))
		for i, it := range s.Transfers {
			out.Transfers[i] = it.Clone()
		}
	}
	return out
}
