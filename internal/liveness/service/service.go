// Package service orchestrates sequence generation, spoofing and
// classification on top of the pure motion, spoof and liveness packages:
// it assigns IDs, caches sequences, persists verdicts, emits audit events
// and records metrics.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"cardcheck/internal/liveness"
	"cardcheck/internal/liveness/metrics"
	"cardcheck/internal/motion"
	dErrors "cardcheck/pkg/domain-errors"
	audit "cardcheck/pkg/platform/audit"
	"cardcheck/pkg/platform/sentinel"
	"cardcheck/pkg/requestcontext"
)

const (
	DefaultSequenceTTL      = 15 * time.Minute
	DefaultBatchConcurrency = 8
	MaxBatchSize            = 100
	DefaultListLimit        = 20
	MaxListLimit            = 100
)

const tracerName = "cardcheck/internal/liveness/service"

// SequenceCache holds generated sequences until they expire.
type SequenceCache interface {
	Put(ctx context.Context, seq *liveness.StoredSequence, ttl time.Duration) error
	Get(ctx context.Context, id uuid.UUID) (*liveness.StoredSequence, error)
}

// ResultStore persists classification records.
type ResultStore interface {
	Save(ctx context.Context, record *liveness.ClassificationRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*liveness.ClassificationRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*liveness.ClassificationRecord, error)
}

// AuditPublisher records audit events and reads back the retained trail.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
	List(ctx context.Context, subjectID string) ([]audit.Event, error)
	Recent(ctx context.Context, limit int) ([]audit.Event, error)
}

// Service is the liveness use-case layer.
type Service struct {
	cache   SequenceCache
	results ResultStore

	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor AuditPublisher
	tracer  trace.Tracer

	random           motion.RandomSource
	sequenceTTL      time.Duration
	batchConcurrency int
	now              func(ctx context.Context) time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithAuditPublisher enables audit events.
func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = p
	}
}

// WithRandomSource fixes the tremor amplitude source. Sources that are not
// safe for concurrent use are fine; the service serializes access.
func WithRandomSource(src motion.RandomSource) Option {
	return func(s *Service) {
		if src != nil {
			s.random = &lockedSource{src: src}
		}
	}
}

// WithSequenceTTL sets how long generated sequences stay retrievable.
func WithSequenceTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sequenceTTL = ttl
		}
	}
}

// WithBatchConcurrency bounds parallel classifications in ClassifyBatch.
func WithBatchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchConcurrency = n
		}
	}
}

// WithClock overrides the request-scoped clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = func(context.Context) time.Time { return now() }
	}
}

// New constructs a Service.
func New(cache SequenceCache, results ResultStore, opts ...Option) (*Service, error) {
	if cache == nil {
		return nil, errors.New("sequence cache is required")
	}
	if results == nil {
		return nil, errors.New("result store is required")
	}

	s := &Service{
		cache:            cache,
		results:          results,
		logger:           slog.Default(),
		tracer:           otel.Tracer(tracerName),
		random:           motion.EntropySource,
		sequenceTTL:      DefaultSequenceTTL,
		batchConcurrency: DefaultBatchConcurrency,
		now:              requestcontext.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// lockedSource serializes draws from a source that is not goroutine-safe.
type lockedSource struct {
	mu  sync.Mutex
	src motion.RandomSource
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// translateStoreError maps infrastructure sentinels to domain errors.
// normalizeLimit maps 0 to DefaultListLimit and rejects anything outside
// [1, MaxListLimit].
func normalizeLimit(limit int) (int, error) {
	switch {
	case limit == 0:
		return DefaultListLimit, nil
	case limit < 0 || limit > MaxListLimit:
		return 0, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("limit must be between 1 and %d", MaxListLimit))
	}
	return limit, nil
}

func translateStoreError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrNotFound), errors.Is(err, sentinel.ErrExpired):
		return dErrors.Wrap(err, dErrors.CodeNotFound, what+" not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, what+" already exists")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, what+" store unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, what+" store timed out")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, what+" store failed")
	}
}

// log tags entries with the request ID when there is one.
func (s *Service) log(ctx context.Context) *slog.Logger {
	if fields := requestcontext.LogFields(ctx); fields != nil {
		return s.logger.With(fields...)
	}
	return s.logger
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.Timestamp = s.now(ctx)
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.log(ctx).WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"subject_id", event.SubjectID,
			"error", err,
		)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func sequenceAttrs(seq *liveness.StoredSequence) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("sequence.id", seq.ID.String()),
		attribute.Int("sequence.frames", seq.Sequence.Len()),
		attribute.String("sequence.pattern", seq.Sequence.Config.MotionPattern.String()),
	}
}
