package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "findash",
			Subsystem: "snapshot_cache",
			Name:      "lookups_total",
			Help:      "Snapshot cache lookups by result (hit, miss, expired, corrupt)",
		},
		[]string{"result"},
	)

	CacheWriteErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "findash",
			Subsystem: "snapshot_cache",
			Name:      "write_errors_total",
			Help:      "Swallowed snapshot cache write failures",
		},
	)

	FetchLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "findash",
			Subsystem: "api",
			Name:      "fetch_latency_seconds",
			Help:      "Latency of backend fetches that missed the cache",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"resource"},
	)

	FetchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "findash",
			Subsystem: "api",
			Name:      "fetch_errors_total",
			Help:      "Backend fetch failures by resource and kind",
		},
		[]string{"resource", "kind"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(CacheLookups, CacheWriteErrors, FetchLatency, FetchErrors)
	})
}
