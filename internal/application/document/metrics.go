package document

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Document pipeline metrics, exposed on /metrics.
var (
	batchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freightdocs_batches_total",
		Help: "Batch submissions by outcome.",
	}, []string{"status"})

	batchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "freightdocs_batch_duration_seconds",
		Help:    "Wall time of a batch submission, delays included.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	})

	documentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freightdocs_documents_total",
		Help: "Documents processed by kind, stage and outcome.",
	}, []string{"kind", "stage", "status"})

	rasterizeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "freightdocs_rasterize_duration_seconds",
		Help:    "Time to rasterize one document into a PDF.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"kind"})

	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freightdocs_uploads_total",
		Help: "Uploads by storage backend and outcome.",
	}, []string{"backend", "status"})

	uploadBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freightdocs_upload_bytes_total",
		Help: "Bytes accepted by the upload submitter.",
	})

	downloadCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freightdocs_download_cache_total",
		Help: "Download cache lookups by result.",
	}, []string{"result"})
)

const (
	statusSuccess = "success"
	statusFailed  = "failed"
)
