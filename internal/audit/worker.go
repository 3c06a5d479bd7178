package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from the publisher's inbox and appends
// them to the sink. Sink failures are logged, not propagated: the trail
// is best-effort by design of the request path.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "failed to append audit event",
					"event_type", event.Type,
					"error", err,
				)
			}
		}
	}
}
