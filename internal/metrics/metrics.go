// file: internal/metrics/metrics.go
// version: 1.0.0
// guid: 4b9d2e70-8a15-4c3f-b6e9-d08a5f71c342

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "respcache",
		Name:      "hits_total",
		Help:      "Total number of cache lookups that returned a live entry",
	})
	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "respcache",
		Name:      "misses_total",
		Help:      "Total number of cache lookups for missing or expired keys",
	})
	cacheEvictions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "respcache",
		Name:      "evictions_total",
		Help:      "Total number of entries evicted to stay within capacity",
	})
	sweepRemoved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "respcache",
		Name:      "sweep_removed_total",
		Help:      "Total number of expired entries removed by sweeps",
	})
	sweepDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "respcache",
		Name:      "sweep_duration_seconds",
		Help:      "Histogram of background sweep durations in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8), // ~100µs up to a few seconds
	})
	entriesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "respcache",
		Name:      "entries",
		Help:      "Current number of entries held by the cache store",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(cacheHits, cacheMisses, cacheEvictions,
			sweepRemoved, sweepDuration, entriesGauge)
	})
}

// Lookup and eviction counters
func IncHit()               { cacheHits.Inc() }
func IncMiss()              { cacheMisses.Inc() }
func IncEviction()          { cacheEvictions.Inc() }
func AddSweepRemoved(n int) { sweepRemoved.Add(float64(n)) }

// Gauges and timings
func SetEntries(n int) { entriesGauge.Set(float64(n)) }
func ObserveSweepDuration(d time.Duration) {
	sweepDuration.Observe(d.Seconds())
}
