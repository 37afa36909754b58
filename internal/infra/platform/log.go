package platform

import (
	"context"
	"log/slog"

	"pantrylink/internal/domain/entity"
	"pantrylink/internal/domain/service"
)

// LogAdapter is the fallback platform adapter used when no webhook
// endpoints are configured: every callback becomes a log line.
type LogAdapter struct {
	logger *slog.Logger
}

// NewLogAdapter creates the logging platform adapter.
func NewLogAdapter(logger *slog.Logger) *LogAdapter {
	return &LogAdapter{logger: logger}
}

func (a *LogAdapter) PublishState(ctx context.Context, view entity.View) error {
	a.logger.Info("entity state",
		slog.String("key", view.Key()),
		slog.Any("state", view.State()))

	return nil
}

func (a *LogAdapter) RemoveEntity(ctx context.Context, key string) error {
	a.logger.Info("entity removed", slog.String("key", key))

	return nil
}

func (a *LogAdapter) Publish(ctx context.Context, event service.Event) error {
	a.logger.Info("domain event",
		slog.String("event", event.Name),
		slog.String("entity_id", event.EntityID),
		slog.String("message", event.Message))

	return nil
}
