// Package metrics exposes Prometheus instrumentation for the key
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Service bundles the collectors the key service reports to.
type Service struct {
	RootKeysCreated    prometheus.Counter
	Derivations        *prometheus.CounterVec
	DerivationFailures *prometheus.CounterVec
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
}

// New registers the collectors on the default registry.
func New() *Service {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors on reg. Tests pass a fresh
// registry to avoid duplicate registration across instances.
func NewWithRegistry(reg prometheus.Registerer) *Service {
	factory := promauto.With(reg)
	return &Service{
		RootKeysCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "hdwallet_root_keys_created_total",
			Help: "Number of root keys created.",
		}),
		Derivations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hdwallet_derivations_total",
			Help: "Number of successful wallet key derivations.",
		}, []string{"chain_type"}),
		DerivationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hdwallet_derivation_failures_total",
			Help: "Number of failed wallet key derivations.",
		}, []string{"chain_type"}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "hdwallet_wallet_key_cache_hits_total",
			Help: "Number of wallet key cache hits.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "hdwallet_wallet_key_cache_misses_total",
			Help: "Number of wallet key cache misses.",
		}),
	}
}
