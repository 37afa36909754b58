package service

import (
	"context"

	"pantrylink/internal/domain/entity"
)

// Platform is the host automation platform adapter. Implementations publish
// entity state and removals to the host; failures are reported but commands
// treat the host bus as fire-and-forget.
type Platform interface {
	// PublishState asks the host to re-render one entity.
	PublishState(ctx context.Context, view entity.View) error

	// RemoveEntity tells the host an entity no longer exists.
	RemoveEntity(ctx context.Context, key string) error
}
