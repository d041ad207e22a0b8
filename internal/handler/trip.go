package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voyagecraft/concierge/backend/internal/domain"
	"github.com/voyagecraft/concierge/backend/internal/store"
)

// decodeJSON decodes the request body into v. An empty body is an error;
// handlers with optional bodies check io.EOF themselves.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	return nil
}

func tripID(r *http.Request) string {
	return chi.URLParam(r, "tripID")
}

// CreateTrip handles POST /trips. An empty body is allowed — the trip gets
// the default title and an unseeded snapshot.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var init store.TripInit
	if err := json.NewDecoder(r.Body).Decode(&init); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, err.Error())
		return
	}

	id := s.store.CreateTrip(r.Context(), init)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// EnsureSeedTrip handles POST /trips/seed: returns the first trip's id,
// creating a seeded default trip when the repository is empty.
func (s *Server) EnsureSeedTrip(w http.ResponseWriter, r *http.Request) {
	id := s.store.EnsureSeedTrip(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// AddMessage handles POST /trips/{tripID}/messages.
func (s *Server) AddMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}

	msg, err := s.store.AddMessage(r.Context(), tripID(r), body.Role, body.Content)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// UpdateSnapshot handles PATCH /trips/{tripID}/snapshot.
func (s *Server) UpdateSnapshot(w http.ResponseWriter, r *http.Request) {
	var patch domain.Snapshot
	if err := decodeJSON(r, &patch); err != nil {
		badRequest(w, err.Error())
		return
	}

	s.store.UpdateSnapshot(r.Context(), tripID(r), patch)
	w.WriteHeader(http.StatusNoContent)
}

// ApplyTripPatch handles PATCH /trips/{tripID}/draft.
func (s *Server) ApplyTripPatch(w http.ResponseWriter, r *http.Request) {
	var patch domain.DraftPatch
	if err := decodeJSON(r, &patch); err != nil {
		badRequest(w, err.Error())
		return
	}

	s.store.ApplyTripPatch(r.Context(), tripID(r), patch)
	w.WriteHeader(http.StatusNoContent)
}

// UpdateTrip handles PATCH /trips/{tripID}: direct title/status mutation.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var patch domain.TripPatch
	if err := decodeJSON(r, &patch); err != nil {
		badRequest(w, err.Error())
		return
	}

	id := tripID(r)
	s.store.UpdateTrip(r.Context(), id, patch)

	trip, err := s.store.Trip(id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// SetProposalSelection handles PUT /trips/{tripID}/selection. The body is a
// sparse patch: omitted slots keep their previous value.
func (s *Server) SetProposalSelection(w http.ResponseWriter, r *http.Request) {
	var patch domain.SelectionPatch
	if err := decodeJSON(r, &patch); err != nil {
		badRequest(w, err.Error())
		return
	}

	s.store.SetProposalSelection(r.Context(), tripID(r), patch)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTrip handles DELETE /trips/{tripID}. Deleting an unknown id is a
// no-op and still returns 204 — the end state is the same.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteTrip(r.Context(), tripID(r))
	w.WriteHeader(http.StatusNoContent)
}
