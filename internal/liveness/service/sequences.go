package service

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"cardcheck/internal/liveness"
	"cardcheck/internal/motion"
	"cardcheck/internal/spoof"
	dErrors "cardcheck/pkg/domain-errors"
	audit "cardcheck/pkg/platform/audit"
)

// Generate simulates a genuine capture for cfg and caches it.
func (s *Service) Generate(ctx context.Context, cfg motion.Config) (stored *liveness.StoredSequence, err error) {
	ctx, span := s.tracer.Start(ctx, "liveness.Generate", trace.WithAttributes(
		attribute.String("motion.pattern", cfg.MotionPattern.String()),
	))
	defer func() { endSpan(span, err) }()

	seq, err := motion.Generate(cfg, s.random)
	if err != nil {
		return nil, err
	}

	stored, err = s.store(ctx, seq, nil, "")
	if err != nil {
		return nil, err
	}
	span.SetAttributes(sequenceAttrs(stored)...)

	s.metrics.IncrementGenerated(cfg.MotionPattern.String(), seq.Len())
	s.emit(ctx, audit.Event{
		Action:    audit.ActionSequenceGenerated,
		SubjectID: stored.ID.String(),
	})
	s.log(ctx).InfoContext(ctx, "sequence generated",
		"sequence_id", stored.ID,
		"pattern", cfg.MotionPattern,
		"frames", seq.Len(),
	)
	return stored, nil
}

// Spoof degrades a cached genuine sequence into t and caches the result.
// Already-spoofed sequences are rejected.
func (s *Service) Spoof(ctx context.Context, sequenceID uuid.UUID, t spoof.Type) (stored *liveness.StoredSequence, err error) {
	ctx, span := s.tracer.Start(ctx, "liveness.Spoof", trace.WithAttributes(
		attribute.String("spoof.type", t.String()),
		attribute.String("baseline.id", sequenceID.String()),
	))
	defer func() { endSpan(span, err) }()

	baseline, err := s.GetSequence(ctx, sequenceID)
	if err != nil {
		return nil, err
	}
	if baseline.SpoofType != "" {
		return nil, dErrors.New(dErrors.CodeValidation, "sequence is already spoofed")
	}

	degraded, err := spoof.Degrade(baseline.Sequence, t)
	if err != nil {
		return nil, err
	}
	return s.storeSpoof(ctx, degraded, &baseline.ID, t)
}

// SpoofDefault degrades a fresh capture of spoof.BaselineConfig into t.
func (s *Service) SpoofDefault(ctx context.Context, t spoof.Type) (stored *liveness.StoredSequence, err error) {
	ctx, span := s.tracer.Start(ctx, "liveness.SpoofDefault", trace.WithAttributes(
		attribute.String("spoof.type", t.String()),
	))
	defer func() { endSpan(span, err) }()

	degraded, err := spoof.DegradeDefault(t, s.random)
	if err != nil {
		return nil, err
	}
	return s.storeSpoof(ctx, degraded, nil, t)
}

func (s *Service) storeSpoof(ctx context.Context, seq motion.Sequence, baselineID *uuid.UUID, t spoof.Type) (*liveness.StoredSequence, error) {
	stored, err := s.store(ctx, seq, baselineID, t)
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementSpoofed(t.String(), seq.Len())
	s.emit(ctx, audit.Event{
		Action:    audit.ActionSequenceSpoofed,
		SubjectID: stored.ID.String(),
		Reason:    t.String(),
	})
	s.log(ctx).InfoContext(ctx, "sequence spoofed",
		"sequence_id", stored.ID,
		"baseline_id", baselineID,
		"spoof_type", t,
	)
	return stored, nil
}

func (s *Service) store(ctx context.Context, seq motion.Sequence, baselineID *uuid.UUID, t spoof.Type) (*liveness.StoredSequence, error) {
	now := s.now(ctx)
	stored := &liveness.StoredSequence{
		ID:         uuid.New(),
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.sequenceTTL),
		BaselineID: baselineID,
		SpoofType:  t.String(),
		Sequence:   seq,
	}
	if err := s.cache.Put(ctx, stored, s.sequenceTTL); err != nil {
		s.log(ctx).ErrorContext(ctx, "failed to cache sequence",
			"sequence_id", stored.ID,
			"error", err,
		)
		return nil, translateStoreError(err, "sequence")
	}
	return stored, nil
}

// GetSequence returns a cached sequence. Missing and expired sequences are
// both not found.
func (s *Service) GetSequence(ctx context.Context, id uuid.UUID) (*liveness.StoredSequence, error) {
	stored, err := s.cache.Get(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, "sequence")
	}
	if stored.Expired(s.now(ctx)) {
		return nil, dErrors.New(dErrors.CodeNotFound, "sequence not found")
	}
	return stored, nil
}
