// Package partner contains the HTTP clients for the travel partner search
// services the proposal generator enriches selections from. The services'
// response items are consumed verbatim — the core stores them without
// reshaping so the UI renders whatever the partner returns.
package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

// Item is one partner result in the partner's own shape.
type Item = map[string]any

// ActivityQuery is the activities-search request.
type ActivityQuery struct {
	Destination string `json:"destination"`
	From        string `json:"from"`
	To          string `json:"to"`
	Adults      int    `json:"adults"`
	Children    int    `json:"children"`
}

// ActivitiesClient calls the activities-search partner service.
type ActivitiesClient struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// NewActivitiesClient constructs a client for the service at baseURL.
func NewActivitiesClient(baseURL string, timeout time.Duration, log *slog.Logger) *ActivitiesClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &ActivitiesClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// SearchActivities returns the partner's activity results for the query.
func (c *ActivitiesClient) SearchActivities(ctx context.Context, query ActivityQuery) ([]Item, error) {
	var out struct {
		Activities []Item `json:"activities"`
	}
	if err := postJSON(ctx, c.http, c.baseURL+"/activities/search", query, &out); err != nil {
		return nil, fmt.Errorf("partner.ActivitiesClient.SearchActivities: %w", err)
	}
	c.log.Debug("activities search completed", "destination", query.Destination, "results", len(out.Activities))
	return out.Activities, nil
}

// postJSON sends body as JSON and decodes the JSON response into out.
func postJSON(ctx context.Context, client *http.Client, url string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
