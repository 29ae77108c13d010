package events

import (
	"context"
	"log/slog"

	"github.com/phrazzld/marvel-api/internal/platform/logger"
	"github.com/phrazzld/marvel-api/internal/redact"
)

// LogHandler writes every degradation event to a structured log at WARN level.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler. If logger is nil, the default logger is used.
func NewLogHandler(l *slog.Logger) *LogHandler {
	if l == nil {
		l = slog.Default()
	}
	return &LogHandler{logger: l.With("component", "degradation_log")}
}

// HandleEvent implements EventHandler.
func (h *LogHandler) HandleEvent(ctx context.Context, event *DegradationEvent) error {
	log := logger.FromContextOrDefault(ctx, h.logger)
	log.WarnContext(ctx, "lossy default substituted",
		slog.String("event_id", event.ID.String()),
		slog.String("event_kind", event.Kind),
		slog.String("entity", event.Entity),
		slog.String("entity_id", event.EntityID),
		slog.String("input", redact.String(event.Input)),
		slog.String("reason", redact.String(event.Reason)))
	return nil
}
