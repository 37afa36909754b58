package impl

import (
	"context"
	"log/slog"

	"pantrylink/internal/domain/service"
)

// publishEvent sends a domain event and logs a failed delivery instead of
// propagating it. Event delivery never fails a command.
func publishEvent(ctx context.Context, logger *slog.Logger, events service.EventPublisher, event service.Event) {
	if err := events.Publish(ctx, event); err != nil {
		logger.Warn("failed to publish event",
			slog.String("event", event.Name),
			slog.Any("error", err))
	}
}

func publishErrorEvent(ctx context.Context, logger *slog.Logger, events service.EventPublisher, entityID, message string) {
	publishEvent(ctx, logger, events, service.Event{
		Name:     service.EventError,
		EntityID: entityID,
		Message:  message,
	})
}
