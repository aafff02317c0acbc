package worker

import (
	"context"
	"log/slog"

	audit "cardcheck/pkg/platform/audit"
)

// StoreFunc adapts a function to audit.Sink.
type StoreFunc func(ctx context.Context, event audit.Event) error

func (f StoreFunc) Append(ctx context.Context, event audit.Event) error {
	return f(ctx, event)
}

// Worker consumes audit events from a channel and persists them until the
// channel is closed, so closing the inbox drains everything already queued.
type Worker struct {
	sink   audit.Sink
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func NewWorker(sink audit.Sink, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run blocks until the inbox is closed or ctx is cancelled. Append failures
// are logged and do not stop the worker.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit append failed",
					"event_id", event.ID,
					"action", event.Action,
					"error", err,
				)
			}
		}
	}
}
