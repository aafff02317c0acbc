package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"cardcheck/internal/liveness"
	"cardcheck/internal/motion"
	dErrors "cardcheck/pkg/domain-errors"
	audit "cardcheck/pkg/platform/audit"
	"cardcheck/pkg/requestcontext"
)

// Classify scores caller-supplied frames and persists the verdict.
func (s *Service) Classify(ctx context.Context, frames []motion.Frame) (*liveness.ClassificationRecord, error) {
	return s.classify(ctx, frames, nil)
}

// ClassifySequence scores a cached sequence.
func (s *Service) ClassifySequence(ctx context.Context, sequenceID uuid.UUID) (*liveness.ClassificationRecord, error) {
	stored, err := s.GetSequence(ctx, sequenceID)
	if err != nil {
		return nil, err
	}
	return s.classify(ctx, stored.Sequence.Frames, &stored.ID)
}

// ClassifyBatch scores each frame set concurrently. Records are returned in
// input order; the first failure cancels the rest.
func (s *Service) ClassifyBatch(ctx context.Context, batches [][]motion.Frame) (records []*liveness.ClassificationRecord, err error) {
	if len(batches) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one sequence is required")
	}
	if len(batches) > MaxBatchSize {
		return nil, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("batch exceeds %d sequences", MaxBatchSize))
	}

	ctx, span := s.tracer.Start(ctx, "liveness.ClassifyBatch", trace.WithAttributes(
		attribute.Int("batch.size", len(batches)),
	))
	defer func() { endSpan(span, err) }()
	s.metrics.ObserveBatchSize(len(batches))

	records = make([]*liveness.ClassificationRecord, len(batches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i, frames := range batches {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			record, err := s.classify(gctx, frames, nil)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeOf(err), fmt.Sprintf("sequence %d", i))
			}
			records[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) classify(ctx context.Context, frames []motion.Frame, sequenceID *uuid.UUID) (record *liveness.ClassificationRecord, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "liveness.Classify", trace.WithAttributes(
		attribute.Int("frames", len(frames)),
	))
	defer func() { endSpan(span, err) }()

	result, err := liveness.Classify(frames)
	if err != nil {
		return nil, err
	}

	record = &liveness.ClassificationRecord{
		ID:         uuid.New(),
		SequenceID: sequenceID,
		FrameCount: len(frames),
		Result:     *result,
		RequestID:  requestcontext.RequestID(ctx),
		CreatedAt:  s.now(ctx),
	}
	if err := s.results.Save(ctx, record); err != nil {
		s.log(ctx).ErrorContext(ctx, "failed to save classification",
			"result_id", record.ID,
			"error", err,
		)
		return nil, translateStoreError(err, "result")
	}

	verdict := result.Verdict()
	span.SetAttributes(
		attribute.String("liveness.verdict", verdict),
		attribute.Int("liveness.score", result.Score),
	)
	s.metrics.IncrementOutcome(verdict, result.Score, !result.Insufficient())
	s.metrics.ObserveClassifyLatency(time.Since(start))
	s.emit(ctx, audit.Event{
		Action:    audit.ActionClassified,
		SubjectID: record.ID.String(),
		Decision:  verdict,
		Score:     result.Score,
		Reason:    result.Reason,
	})
	s.log(ctx).InfoContext(ctx, "sequence classified",
		"result_id", record.ID,
		"sequence_id", sequenceID,
		"verdict", verdict,
		"score", result.Score,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return record, nil
}

// GetResult returns a persisted classification.
func (s *Service) GetResult(ctx context.Context, id uuid.UUID) (*liveness.ClassificationRecord, error) {
	record, err := s.results.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, "result")
	}
	return record, nil
}

// ListRecentResults returns the newest classifications. A zero limit means
// DefaultListLimit.
func (s *Service) ListRecentResults(ctx context.Context, limit int) ([]*liveness.ClassificationRecord, error) {
	limit, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	records, err := s.results.ListRecent(ctx, limit)
	if err != nil {
		return nil, translateStoreError(err, "result")
	}
	return records, nil
}
