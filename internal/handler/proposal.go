package handler

import (
	"net/http"

	"github.com/voyagecraft/concierge/backend/internal/domain"
	"github.com/voyagecraft/concierge/backend/internal/pricing"
)

// proposalView is the GET /trips/{id}/proposal response: the stored proposal
// next to the live selection and a freshly computed price breakdown, so the
// review page renders from one round trip.
type proposalView struct {
	Proposal  domain.Proposal   `json:"proposal"`
	Selection domain.Selection  `json:"selection"`
	Price     pricing.Breakdown `json:"price"`
}

// GenerateProposal handles POST /trips/{tripID}/proposal. The synchronous
// portion (sections, status, selection record) completes before the response;
// enrichment continues in the background and lands in later state snapshots.
func (s *Server) GenerateProposal(w http.ResponseWriter, r *http.Request) {
	prop := s.generator.Generate(r.Context(), tripID(r))
	writeJSON(w, http.StatusCreated, prop)
}

// GetProposal handles GET /trips/{tripID}/proposal.
func (s *Server) GetProposal(w http.ResponseWriter, r *http.Request) {
	id := tripID(r)
	prop, err := s.store.Proposal(id)
	if err != nil {
		respondError(w, err)
		return
	}

	sel := s.store.Selection(id)
	writeJSON(w, http.StatusOK, proposalView{
		Proposal:  prop,
		Selection: sel,
		Price:     pricing.ComputePrice(sel, s.store.Draft(id)),
	})
}
