package services

import "github.com/prometheus/client_golang/prometheus"

var (
	articleWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_writes_total",
			Help: "Article write attempts by operation and final state.",
		},
		[]string{"operation", "state"},
	)
	slugConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "article_slug_conflicts_total",
			Help: "Unique-slug violations detected on commit and retried.",
		},
	)
	cacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_cache_requests_total",
			Help: "Article read cache lookups and discarded stale writes by result.",
		},
		[]string{"result"},
	)
	statsRefreshed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "article_stats_refreshed_total",
			Help: "Articles whose cached reading statistics were rewritten.",
		},
	)
	imageUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_uploads_total",
			Help: "Image uploads by preset and outcome.",
		},
		[]string{"preset", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(articleWrites, slugConflicts, cacheRequests, statsRefreshed, imageUploads)
}
