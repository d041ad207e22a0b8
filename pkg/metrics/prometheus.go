// Package metrics holds the prometheus instrumentation for the concierge core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics for the trip store and its bridges.
// Core packages accept a possibly-nil *Metrics so tests and storage-less
// runs don't need a registry.
type Metrics struct {
	Mutations          prometheus.Counter
	PersistFailures    prometheus.Counter
	SyncPushes         prometheus.Counter
	SyncFailures       prometheus.Counter
	EnrichmentFailures *prometheus.CounterVec
}

// New registers and returns the metric set on the given registerer.
// Pass prometheus.DefaultRegisterer in production and a fresh
// prometheus.NewRegistry() in tests to avoid duplicate registration.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Mutations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "The total number of trip store mutations",
		}),
		PersistFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_persist_failures_total",
			Help:      "The total number of swallowed partition write failures",
		}),
		SyncPushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_pushes_total",
			Help:      "The total number of remote sync pushes attempted",
		}),
		SyncFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_push_failures_total",
			Help:      "The total number of swallowed remote sync push failures",
		}),
		EnrichmentFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_failures_total",
			Help:      "The total number of swallowed partner enrichment failures",
		}, []string{"kind"}),
	}
}
