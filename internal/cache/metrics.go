package cache

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts cache traffic.
type Metrics struct {
	Hits          prometheus.Counter
	Misses        prometheus.Counter
	Errors        *prometheus.CounterVec
	Invalidations *prometheus.CounterVec
}

// NewMetrics creates the cache counters and registers them with reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "recipeshare",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of cache hits",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "recipeshare",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total number of cache misses",
		}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recipeshare",
			Subsystem: "cache",
			Name:      "errors_total",
			Help:      "Total number of failed cache operations",
		}, []string{"operation"}),
		Invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recipeshare",
			Subsystem: "cache",
			Name:      "invalidations_total",
			Help:      "Total number of cache invalidations",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.Hits, m.Misses, m.Errors, m.Invalidations)
	}
	return m
}

// InstrumentedStore records hits, misses, errors and invalidations of the wrapped store.
type InstrumentedStore struct {
	next    Store
	metrics *Metrics
}

// NewInstrumentedStore creates a new InstrumentedStore instance
func NewInstrumentedStore(next Store, metrics *Metrics) *InstrumentedStore {
	return &InstrumentedStore{next: next, metrics: metrics}
}

func (s *InstrumentedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, found, err := s.next.Get(ctx, key)
	switch {
	case err != nil:
		s.metrics.Errors.WithLabelValues("get").Inc()
	case found:
		s.metrics.Hits.Inc()
	default:
		s.metrics.Misses.Inc()
	}
	return value, found, err
}

func (s *InstrumentedStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := s.next.Set(ctx, key, value, ttl)
	if err != nil {
		s.metrics.Errors.WithLabelValues("set").Inc()
	}
	return err
}

func (s *InstrumentedStore) Remove(ctx context.Context, key string) error {
	err := s.next.Remove(ctx, key)
	if err != nil {
		s.metrics.Errors.WithLabelValues("remove").Inc()
		return err
	}
	s.metrics.Invalidations.WithLabelValues("key").Inc()
	return nil
}

func (s *InstrumentedStore) RemoveByPrefix(ctx context.Context, prefix string) error {
	err := s.next.RemoveByPrefix(ctx, prefix)
	if err != nil {
		s.metrics.Errors.WithLabelValues("remove_by_prefix").Inc()
		return err
	}
	s.metrics.Invalidations.WithLabelValues("prefix").Inc()
	return nil
}

func (s *InstrumentedStore) Ping(ctx context.Context) error {
	err := s.next.Ping(ctx)
	if err != nil {
		s.metrics.Errors.WithLabelValues("ping").Inc()
	}
	return err
}
