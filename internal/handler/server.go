// Package handler implements the HTTP handlers for the Trip Concierge API.
// All handlers are methods on Server. Methods are split into files by
// concern (trip.go, proposal.go, scope.go) but all share the same Server
// struct so they can access its dependencies.
//
// The HTTP layer is thin presentation glue: every operation delegates to the
// trip store, the proposal generator, or the sync bridge.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voyagecraft/concierge/backend/internal/domain"
	"github.com/voyagecraft/concierge/backend/internal/store"
)

// ProposalGenerator defines the proposal operation the handler depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a double without wiring partner HTTP clients.
type ProposalGenerator interface {
	Generate(ctx context.Context, tripID string) domain.Proposal
}

// RemotePuller fetches the remote state for an identity on login.
type RemotePuller interface {
	Pull(ctx context.Context, email string) (domain.StatePatch, error)
}

// Server holds the dependencies shared by all API endpoints.
type Server struct {
	store     *store.Store
	generator ProposalGenerator
	puller    RemotePuller // nil disables /sync/pull
	log       *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(s *store.Store, generator ProposalGenerator, puller RemotePuller, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{store: s, generator: generator, puller: puller, log: log}
}

// Routes registers every endpoint on a fresh chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)
	r.Get("/state", s.GetState)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Post("/seed", s.EnsureSeedTrip)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Patch("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Post("/messages", s.AddMessage)
			r.Patch("/snapshot", s.UpdateSnapshot)
			r.Patch("/draft", s.ApplyTripPatch)
			r.Put("/selection", s.SetProposalSelection)
			r.Post("/proposal", s.GenerateProposal)
			r.Get("/proposal", s.GetProposal)
		})
	})

	r.Post("/scope", s.UseScope)
	r.Post("/sync/pull", s.PullRemote)
	r.Post("/store/clear", s.ClearStore)

	return r
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetState handles GET /state: the full repository snapshot for the active
// scope, the same shape subscribers observe.
func (s *Server) GetState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.State())
}
