package domain

import "time"

// ProposalSection is one ordered block of a proposal (e.g. "Flights",
// "Resorts", "Experiences") with human-readable line items.
type ProposalSection struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// Proposal is the generated, displayable summary of a trip. It is rebuilt
// wholesale on every generation run — never merged with a prior proposal.
type Proposal struct {
	TripID        string            `json:"tripId"`
	Title         string            `json:"title"`
	Sections      []ProposalSection `json:"sections"`
	PriceEstimate string            `json:"priceEstimate,omitempty"`
	Images        []string          `json:"images,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// Clone returns an independent copy of the proposal.
func (p Proposal) Clone() Proposal {
	out := p
	out.Sections = make([]ProposalSection, len(p.Sections))
	for i, sec := range p.Sections {
		out.Sections[i] = ProposalSection{Title: sec.Title, Items: append([]string(nil), sec.Items...)}
	}
	out.Images = append([]string(nil), p.Images...)
	return out
}
