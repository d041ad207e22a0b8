package syncbridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/voyagecraft/concierge/backend/internal/domain"
)

// HTTPClient talks to the remote user-data endpoint:
//
//	POST /user-data   {"email": ..., "tripsState": {...}}
//	GET  /user-data?email=...   -> {"tripsState": {...}}
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// NewHTTPClient constructs a client for the remote store at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration, log *slog.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = pushTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type pushBody struct {
	Email      string       `json:"email"`
	TripsState domain.State `json:"tripsState"`
}

// pullBody mirrors the GET response. Each table is decoded individually so a
// single malformed table never discards the rest of the payload.
type pullBody struct {
	TripsState struct {
		Trips      json.RawMessage `json:"trips"`
		Messages   json.RawMessage `json:"messages"`
		Snapshots  json.RawMessage `json:"snapshots"`
		Drafts     json.RawMessage `json:"tripDrafts"`
		Proposals  json.RawMessage `json:"proposals"`
		Selections json.RawMessage `json:"selections"`
	} `json:"tripsState"`
}

// Push uploads the full state snapshot keyed by email. Each push carries a
// generated push id so server and client logs can be correlated.
func (c *HTTPClient) Push(ctx context.Context, email string, state domain.State) error {
	body, err := json.Marshal(pushBody{Email: email, TripsState: state})
	if err != nil {
		return fmt.Errorf("syncbridge.HTTPClient.Push: marshal: %w", err)
	}

	pushID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/user-data", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("syncbridge.HTTPClient.Push: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Push-Id", pushID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("syncbridge.HTTPClient.Push: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("syncbridge.HTTPClient.Push: unexpected status %d", resp.StatusCode)
	}
	c.log.Debug("remote sync pushed", "email", email, "push_id", pushID)
	return nil
}

// Pull downloads the remote state for email and converts it to a per-table
// patch. Tables that are absent or fail to decode are dropped from the patch
// (the store keeps its in-memory value for those), never an error.
func (c *HTTPClient) Pull(ctx context.Context, email string) (domain.StatePatch, error) {
	u := c.baseURL + "/user-data?email=" + url.QueryEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.StatePatch{}, fmt.Errorf("syncbridge.HTTPClient.Pull: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.StatePatch{}, fmt.Errorf("syncbridge.HTTPClient.Pull: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Nothing stored remotely for this identity yet.
		return domain.StatePatch{}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.StatePatch{}, fmt.Errorf("syncbridge.HTTPClient.Pull: unexpected status %d", resp.StatusCode)
	}

	var body pullBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.StatePatch{}, fmt.Errorf("syncbridge.HTTPClient.Pull: decode: %w", err)
	}

	var patch domain.StatePatch
	decodeTable(body.TripsState.Trips, &patch.Trips, "trips", c.log)
	decodeTable(body.TripsState.Messages, &patch.Messages, "messages", c.log)
	decodeTable(body.TripsState.Snapshots, &patch.Snapshots, "snapshots", c.log)
	decodeTable(body.TripsState.Drafts, &patch.Drafts, "tripDrafts", c.log)
	decodeTable(body.TripsState.Proposals, &patch.Proposals, "proposals", c.log)
	decodeTable(body.TripsState.Selections, &patch.Selections, "selections", c.log)
	return patch, nil
}

// decodeTable unmarshals one raw table into *out, leaving *out nil (meaning
// "keep local") when the table is absent, JSON null, or malformed.
func decodeTable[T any](raw json.RawMessage, out **T, name string, log *slog.Logger) {
	if len(raw) == 0 || string(raw) == "null" {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Warn("remote pull table malformed, keeping local value", "table", name, "error", err)
		return
	}
	*out = &v
}
