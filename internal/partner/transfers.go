package partner

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// TransferQuery is the transfers-search request.
type TransferQuery struct {
	Destination string `json:"destination"`
	PickupDate  string `json:"pickupDate"`
	Adults      int    `json:"adults"`
	Children    int    `json:"children"`
}

// TransfersClient calls the transfers-search partner service.
type TransfersClient struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// NewTransfersClient constructs a client for the service at baseURL.
func NewTransfersClient(baseURL string, timeout time.Duration, log *slog.Logger) *TransfersClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &TransfersClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// SearchTransfers returns the partner's transfer results for the query.
func (c *TransfersClient) SearchTransfers(ctx context.Context, query TransferQuery) ([]Item, error) {
	var out struct {
		Transfers []Item `json:"transfers"`
	}
	if err := postJSON(ctx, c.http, c.baseURL+"/transfers/search", query, &out); err != nil {
		return nil, fmt.Errorf("partner.TransfersClient.SearchTransfers: %w", err)
	}
	c.log.Debug("transfers search completed", "destination", query.Destination, "results", len(out.Transfers))
	return out.Transfers, nil
}
