package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExtractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "colortrack_extractions_total",
		Help: "Total number of color extractions, by outcome",
	}, []string{"status"})

	ExtractionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "colortrack_extraction_duration_seconds",
		Help:    "Duration of successful color extractions",
		Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600},
	})

	ChunksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "colortrack_chunks_total",
		Help: "Total number of chunks processed by worker units, by outcome",
	}, []string{"status"})

	FramesDecodedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "colortrack_frames_total",
		Help: "Frames advanced by worker units; read frames are fully decoded, skipped frames are grabbed",
	}, []string{"op"})

	ActiveJobs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "colortrack_active_jobs",
		Help: "Number of daemon extraction jobs currently running",
	})
)
