package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the liveness module.
type Metrics struct {
	// Sequences produced by pattern ("complete", "tilt-only", ...) or spoof type
	SequencesGenerated *prometheus.CounterVec
	SequencesSpoofed   *prometheus.CounterVec
	FramesGenerated    prometheus.Counter

	// Classification outcomes by verdict ("live", "not_live", "insufficient")
	ClassificationOutcome *prometheus.CounterVec
	ClassificationScore   prometheus.Histogram
	ClassifyLatency       prometheus.Histogram

	BatchSize prometheus.Histogram
}

// New creates a Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SequencesGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cardcheck_liveness_sequences_generated_total",
			Help: "Total generated motion sequences by pattern",
		}, []string{"pattern"}),

		SequencesSpoofed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cardcheck_liveness_sequences_spoofed_total",
			Help: "Total spoofed sequences by spoof type",
		}, []string{"spoof_type"}),

		FramesGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "cardcheck_liveness_frames_generated_total",
			Help: "Total frames produced across generated and spoofed sequences",
		}),

		ClassificationOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cardcheck_liveness_classifications_total",
			Help: "Total classifications by verdict",
		}, []string{"verdict"}),

		ClassificationScore: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cardcheck_liveness_score",
			Help:    "Distribution of liveness scores for fully analyzed sequences",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),

		ClassifyLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cardcheck_liveness_classify_duration_seconds",
			Help:    "Duration of a single classification including persistence",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),

		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cardcheck_liveness_batch_size",
			Help:    "Number of sequences per batch classification",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}
}

// IncrementGenerated records a generated sequence and its frames.
func (m *Metrics) IncrementGenerated(pattern string, frames int) {
	if m != nil {
		m.SequencesGenerated.WithLabelValues(pattern).Inc()
		m.FramesGenerated.Add(float64(frames))
	}
}

// IncrementSpoofed records a spoofed sequence and its frames.
func (m *Metrics) IncrementSpoofed(spoofType string, frames int) {
	if m != nil {
		m.SequencesSpoofed.WithLabelValues(spoofType).Inc()
		m.FramesGenerated.Add(float64(frames))
	}
}

// IncrementOutcome records a classification verdict. Scores are only
// observed for analyzed sequences.
func (m *Metrics) IncrementOutcome(verdict string, score int, analyzed bool) {
	if m != nil {
		m.ClassificationOutcome.WithLabelValues(verdict).Inc()
		if analyzed {
			m.ClassificationScore.Observe(float64(score))
		}
	}
}

// ObserveClassifyLatency records the duration of one classification.
func (m *Metrics) ObserveClassifyLatency(d time.Duration) {
	if m != nil {
		m.ClassifyLatency.Observe(d.Seconds())
	}
}

// ObserveBatchSize records the size of a batch request.
func (m *Metrics) ObserveBatchSize(n int) {
	if m != nil {
		m.BatchSize.Observe(float64(n))
	}
}
