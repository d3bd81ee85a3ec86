// Package observability defines Prometheus metrics for the feed service.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostsCreatedTotal counts posts created, labeled by media kind.
	PostsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snapfeed_posts_created_total",
		Help: "Total number of posts created by media kind",
	}, []string{"file_type"})

	// PostsDeletedTotal counts posts deleted by their owners.
	PostsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snapfeed_posts_deleted_total",
		Help: "Total number of posts deleted",
	})

	// MediaUploadLatency records media store upload latency by outcome.
	MediaUploadLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snapfeed_media_upload_latency_seconds",
		Help:    "Media store upload latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	// MediaUploadErrorsTotal counts failed media store uploads.
	MediaUploadErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snapfeed_media_upload_errors_total",
		Help: "Total number of failed media store uploads",
	})
)

// ObserveUpload records one media store upload attempt.
func ObserveUpload(start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		MediaUploadErrorsTotal.Inc()
	}
	MediaUploadLatency.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}
