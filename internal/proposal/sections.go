package proposal

import (
	"fmt"

	"github.com/voyagecraft/concierge/backend/internal/domain"
)

// DefaultAccommodation titles the accommodation section when the draft does
// not name a type. The known types are Yachts, Airbnbs, Resorts and Hotels,
// but the draft value is used as-is — the section title is presentation.
const DefaultAccommodation = "Hotels"

// experiencesCloser is the fixed final section of every proposal.
var experiencesCloser = domain.ProposalSection{
	Title: "Experiences",
	Items: []string{
		"Private welcome dinner on arrival",
		"Dedicated concierge available throughout your stay",
		"Priority access to partner events and venues",
	},
}

// buildSections derives the ordered proposal sections from the draft.
// Every field is optional; missing values fall back to generic copy so a
// nearly-empty draft still yields a presentable proposal.
func buildSections(draft domain.TripDraft) []domain.ProposalSection {
	destination := draft.Destination
	if destination == "" {
		destination = "your destination"
	}

	var sections []domain.ProposalSection

	if draft.TransportationType == "Flights" {
		departure := draft.DepartureCity
		if departure == "" {
			departure = "your city"
		}
		sections = append(sections, domain.ProposalSection{
			Title: "Flights",
			Items: []string{
				fmt.Sprintf("Round-trip flights from %s to %s", departure, destination),
				"Fares held while you review this proposal",
			},
		})
	}

	accommodation := draft.AccommodationType
	if accommodation == "" {
		accommodation = DefaultAccommodation
	}
	stay := domain.ProposalSection{
		Title: accommodation,
		Items: []string{fmt.Sprintf("Handpicked stay in %s", destination)},
	}
	if draft.CheckIn != "" && draft.CheckOut != "" {
		stay.Items = append(stay.Items, fmt.Sprintf("%s – %s", draft.CheckIn, draft.CheckOut))
	}
	if draft.Style != "" {
		stay.Items = append(stay.Items, fmt.Sprintf("Selected for a %s style of travel", draft.Style))
	}
	sections = append(sections, stay)

	if draft.IncludeActivities {
		sections = append(sections, domain.ProposalSection{
			Title: "Activities",
			Items: []string{"Curated experiences — confirming availability with local partners"},
		})
	}
	if draft.IncludeTransfers {
		sections = append(sections, domain.ProposalSection{
			Title: "Transfers",
			Items: []string{"Private transfers — confirming vehicles and pickup times"},
		})
	}

	return append(sections, experiencesCloser)
}
