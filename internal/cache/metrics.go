package cache

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	hitsDesc = prometheus.NewDesc("portfolio_cache_hits_total",
		"Upstream cache lookups that returned a payload", []string{"backend"}, nil)
	missesDesc = prometheus.NewDesc("portfolio_cache_misses_total",
		"Upstream cache lookups that found nothing", []string{"backend"}, nil)
	setsDesc = prometheus.NewDesc("portfolio_cache_sets_total",
		"Payloads written to the upstream cache", []string{"backend"}, nil)
	entriesDesc = prometheus.NewDesc("portfolio_cache_entries",
		"Entries currently held, zero for backends that do not track size", []string{"backend"}, nil)
)

// StatsCollector exports a Cache's Stats as Prometheus metrics at scrape time
type StatsCollector struct {
	cache   Cache
	backend string
}

// NewStatsCollector creates a collector for c labelled with backend
func NewStatsCollector(c Cache, backend string) *StatsCollector {
	return &StatsCollector{cache: c, backend: backend}
}

func (s *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- hitsDesc
	ch <- missesDesc
	ch <- setsDesc
	ch <- entriesDesc
}

func (s *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	st := s.cache.Stats()
	ch <- prometheus.MustNewConstMetric(hitsDesc, prometheus.CounterValue, float64(st.Hits), s.backend)
	ch <- prometheus.MustNewConstMetric(missesDesc, prometheus.CounterValue, float64(st.Misses), s.backend)
	ch <- prometheus.MustNewConstMetric(setsDesc, prometheus.CounterValue, float64(st.Sets), s.backend)
	ch <- prometheus.MustNewConstMetric(entriesDesc, prometheus.GaugeValue, float64(st.CurrentSize), s.backend)
}

// Register adds the collector to reg, replacing one registered earlier.
func (s *StatsCollector) Register(reg prometheus.Registerer) error {
	err := reg.Register(s)
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		reg.Unregister(are.ExistingCollector)
		return reg.Register(s)
	}
	return err
}
