package metrics

import "github.com/prometheus/client_golang/prometheus"

// CacheMetrics holds Prometheus metrics for the entity caches.
type CacheMetrics struct {
	Hits      *prometheus.CounterVec
	Misses    *prometheus.CounterVec
	Evictions *prometheus.CounterVec
}

// NewCacheMetrics creates and registers cache metrics on the given registry.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	m := &CacheMetrics{
		Hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "entity_cache",
			Name:      "hits_total",
			Help:      "Total number of entity cache hits, by entity type.",
		}, []string{"entity"}),
		Misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "entity_cache",
			Name:      "misses_total",
			Help:      "Total number of entity cache misses, by entity type.",
		}, []string{"entity"}),
		Evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "entity_cache",
			Name:      "evictions_total",
			Help:      "Total number of entity cache evictions, by entity type.",
		}, []string{"entity"}),
	}

	reg.MustRegister(m.Hits, m.Misses, m.Evictions)
	return m
}
