package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "notion_config"

//nolint:gochecknoglobals
var (
	UnknownPropertyTypes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "property",
			Name:      "unknown_types_total",
			Help:      "Properties with a tag the normalizer does not know",
		},
		[]string{"type"},
	)

	NotionPagesFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notion",
			Name:      "pages_fetched_total",
			Help:      "Pages returned by database queries",
		},
		[]string{"database"},
	)

	NotionQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "notion",
			Name:      "query_duration_seconds",
			Help:      "Duration of a paginated database query",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"database"},
	)

	NotionCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notion",
			Name:      "cache_hits_total",
			Help:      "Database queries served from the response cache",
		},
		[]string{"database"},
	)

	SyncApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "applied_total",
			Help:      "Config files written by sync operations",
		},
		[]string{"kind", "status"},
	)

	LotteryGroupsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lottery",
			Name:      "groups_skipped_total",
			Help:      "Lottery groups dropped while transforming",
		},
		[]string{"reason"},
	)
)
