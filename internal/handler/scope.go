package handler

import (
	"net/http"

	"github.com/voyagecraft/concierge/backend/internal/store"
)

// UseScope handles POST /scope: switches the active storage partition to the
// one matching the supplied identity (empty means guest). Switching to the
// already-active scope is a no-op.
func (s *Server) UseScope(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Identity string `json:"identity"`
	}
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}

	s.store.UseScope(r.Context(), body.Identity)
	writeJSON(w, http.StatusOK, map[string]string{"scope": store.NormalizeScope(body.Identity)})
}

// PullRemote handles POST /sync/pull: the pull-on-login hydration path.
// Pull failures follow the core's resilience posture — they are logged and
// the in-memory state is kept, so the response is 204 either way.
func (s *Server) PullRemote(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}

	if s.puller == nil {
		// Remote sync is not configured; login proceeds on local state.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	patch, err := s.puller.Pull(r.Context(), body.Email)
	if err != nil {
		s.log.Warn("remote pull failed, keeping local state", "email", body.Email, "error", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.store.MergeRemote(r.Context(), patch)
	w.WriteHeader(http.StatusNoContent)
}

// ClearStore handles POST /store/clear: resets the active partition to a
// pristine state.
func (s *Server) ClearStore(w http.ResponseWriter, r *http.Request) {
	s.store.ClearStore(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
