// Package proposal assembles a trip's human-readable proposal from its draft
// and orchestrates the asynchronous partner enrichment of its selection.
package proposal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/voyagecraft/concierge/backend/internal/domain"
	"github.com/voyagecraft/concierge/backend/internal/partner"
	"github.com/voyagecraft/concierge/backend/internal/pricing"
	"github.com/voyagecraft/concierge/backend/internal/store"
	"github.com/voyagecraft/concierge/backend/pkg/metrics"
)

// ActivitiesSearcher is the activities-search collaborator the generator
// enriches from. Defined here, in the consumer package, so tests inject a
// double without touching the HTTP client.
type ActivitiesSearcher interface {
	SearchActivities(ctx context.Context, query partner.ActivityQuery) ([]partner.Item, error)
}

// TransfersSearcher is the transfers-search collaborator.
type TransfersSearcher interface {
	SearchTransfers(ctx context.Context, query partner.TransferQuery) ([]partner.Item, error)
}

// Generator builds proposals against the trip store. Either searcher may be
// nil, which disables that enrichment path entirely.
type Generator struct {
	store      *store.Store
	activities ActivitiesSearcher
	transfers  TransfersSearcher
	log        *slog.Logger
	metrics    *metrics.Metrics
}

// NewGenerator constructs a Generator. log defaults to slog.Default; m may be nil.
func NewGenerator(s *store.Store, activities ActivitiesSearcher, transfers TransfersSearcher, log *slog.Logger, m *metrics.Metrics) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{store: s, activities: activities, transfers: transfers, log: log, metrics: m}
}

// Generate builds the trip's proposal from its draft, replaces any prior
// proposal, marks the trip Ready, and ensures a selection record exists.
// That synchronous portion always completes and is observed by subscribers
// before any enrichment lands. Enrichment (activities, transfers) then runs
// in the background; its failures are logged, never surfaced — the returned
// proposal is already final from this subsystem's point of view.
func (g *Generator) Generate(ctx context.Context, tripID string) domain.Proposal {
	id := g.store.EnsureTrip(ctx, tripID)
	trip, _ := g.store.Trip(id)
	draft := g.store.Draft(id)

	breakdown := pricing.ComputePrice(g.store.Selection(id), draft)
	prop := domain.Proposal{
		TripID:        id,
		Title:         trip.Title,
		Sections:      buildSections(draft),
		PriceEstimate: fmt.Sprintf("From $%.0f", breakdown.Total),
		Notes:         draft.Notes,
		UpdatedAt:     time.Now().UTC(),
	}

	g.store.SetProposal(ctx, id, prop)
	g.store.SetTripStatus(ctx, id, domain.StatusReady)
	g.store.EnsureSelection(ctx, id)

	g.enrich(ctx, id, draft)
	return prop
}

// enrich kicks off the background partner searches the draft asks for.
// The goroutines outlive the caller's request on purpose: enrichment is not
// cancelled when a newer generation starts — the last writer for each field
// wins. A search that never resolves leaves its field untouched.
func (g *Generator) enrich(ctx context.Context, tripID string, draft domain.TripDraft) {
	// Detach from the request's cancellation; the HTTP clients carry their
	// own timeouts.
	bg := context.WithoutCancel(ctx)
	children := len(draft.ChildrenAges)

	if g.activities != nil && draft.IncludeActivities &&
		draft.Destination != "" && draft.CheckIn != "" && draft.CheckOut != "" {
		go func() {
			items, err := g.activities.SearchActivities(bg, partner.ActivityQuery{
				Destination: draft.Destination,
				From:        draft.CheckIn,
				To:          draft.CheckOut,
				Adults:      draft.Adults,
				Children:    children,
			})
			if err != nil {
				g.enrichmentFailed("activities", tripID, err)
				return
			}
			g.store.SetSelectionActivities(bg, tripID, toSelectionItems(items))
		}()
	}

	if g.transfers != nil && draft.IncludeTransfers &&
		draft.Destination != "" && draft.CheckIn != "" {
		go func() {
			items, err := g.transfers.SearchTransfers(bg, partner.TransferQuery{
				Destination: draft.Destination,
				PickupDate:  draft.CheckIn,
				Adults:      draft.Adults,
				Children:    children,
			})
			if err != nil {
				g.enrichmentFailed("transfers", tripID, err)
				return
			}
			g.store.SetSelectionTransfers(bg, tripID, toSelectionItems(items))
		}()
	}
}

func (g *Generator) enrichmentFailed(kind, tripID string, err error) {
	if g.metrics != nil {
		g.metrics.EnrichmentFailures.WithLabelValues(kind).Inc()
	}
	g.log.Warn("enrichment failed, selection left unchanged", "kind", kind, "trip_id", tripID, "error", err)
}

func toSelectionItems(items []partner.Item) []domain.SelectionItem {
	out := make([]domain.SelectionItem, len(items))
	for i, it := range items {
		out[i] = domain.SelectionItem(it)
	}
	return out
}
