package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	audit "cardcheck/pkg/platform/audit"
)

// ListAuditEvents returns the retained audit trail. With a subject ID it
// returns that subject's events oldest first; otherwise the most recent
// events across all subjects, newest first. Without an audit publisher the
// trail is empty.
func (s *Service) ListAuditEvents(ctx context.Context, subjectID string, limit int) (events []audit.Event, err error) {
	ctx, span := s.tracer.Start(ctx, "liveness.ListAuditEvents", trace.WithAttributes(
		attribute.String("audit.subject_id", subjectID),
	))
	defer func() { endSpan(span, err) }()

	if limit, err = normalizeLimit(limit); err != nil {
		return nil, err
	}
	if s.auditor == nil {
		return []audit.Event{}, nil
	}

	if subjectID != "" {
		events, err = s.auditor.List(ctx, subjectID)
		if len(events) > limit {
			events = events[len(events)-limit:]
		}
	} else {
		events, err = s.auditor.Recent(ctx, limit)
	}
	if err != nil {
		return nil, translateStoreError(err, "audit event")
	}
	if events == nil {
		events = []audit.Event{}
	}
	return events, nil
}
