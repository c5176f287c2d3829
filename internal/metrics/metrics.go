// Package metrics exposes Prometheus counters for the content pipeline:
// cache traffic, item mutations, and file imports.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mashpress"

var (
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Cache hits by key",
		},
		[]string{"key"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Cache misses by key",
		},
		[]string{"key"},
	)

	PageInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "page_invalidations_total",
			Help:      "Times the cached page bodies were flushed",
		},
	)

	ItemMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "item_mutations_total",
			Help:      "Item mutations by operation (save, trash, purge)",
		},
		[]string{"op"},
	)

	ImportedFiles = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "imported_files_total",
			Help:      "Source files imported through the pipeline",
		},
	)
)
