package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/neonboard/internal/domain"
)

type logHandler struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogHandler returns a subscriber that writes one "domain_event" record
// per event at the given level.
func NewLogHandler(logger *slog.Logger, level slog.Level) Handler {
	return &logHandler{logger: logger, level: level}
}

func (h *logHandler) Handle(ctx context.Context, e domain.Event) error {
	h.logger.Log(ctx, h.level, "domain_event",
		"event_type", string(e.EventType()),
		"aggregate_id", e.AggregateID(),
		"occurred_at", e.OccurredAt().UTC().Format(time.RFC3339),
	)
	return nil
}
