package usecase

import (
	"context"
	"time"

	"pantrylink/internal/domain/entity"
)

// RefreshInput selects what a refresh pass covers.
type RefreshInput struct {
	// Categories to refresh; empty means all six.
	Categories []entity.Category
	// Force fetches every requested category regardless of the staleness
	// token.
	Force bool
	// IncludeUserfields also pulls the per-product metadata bags when the
	// products category is refreshed.
	IncludeUserfields bool
}

// DebugOutput is a diagnostic snapshot of the integration state.
type DebugOutput struct {
	IntegrationVersion string               `json:"integration_version"`
	ServerVersion      string               `json:"server_version"`
	TotalProducts      int                  `json:"total_products"`
	CachedCounts       map[string]int       `json:"cached_counts"`
	LastTokens         map[string]time.Time `json:"last_tokens"`
	Entities           []string             `json:"entities"`
}

// SyncUsecase is the cache/sync engine: it owns the snapshot's staleness
// lifecycle and the registry's convergence with it.
type SyncUsecase interface {
	// Refresh fetches the staleness token once and refetches every requested
	// category whose last-seen token differs. A token fetch failure aborts
	// the pass; individual category failures are collected and returned
	// after the remaining categories settle.
	Refresh(ctx context.Context, input RefreshInput) error

	// Sync is the full pipeline: force refresh with userfields, registry
	// reconciliation, optional store price resolution, state publish on
	// every entity, sync_done event.
	Sync(ctx context.Context) error

	// Objects returns the cached contents of one category without fetching.
	Objects(category entity.Category) any

	// Entities returns every registered view entity.
	Entities() []entity.View

	// Entity returns the view registered under key.
	Entity(key string) (entity.View, bool)

	// RequestStateRefresh recomputes one entity's denormalized state and
	// publishes it to the host platform. Unknown keys are a no-op.
	RequestStateRefresh(ctx context.Context, key string)

	// FetchUserfields reads one product's metadata bag from the remote.
	FetchUserfields(ctx context.Context, productID int) (entity.Userfields, error)

	// SetUserfields writes metadata keys remotely. Whether the write bumps
	// the staleness token is vendor-defined, so callers force-refresh
	// afterwards when the change must be visible.
	SetUserfields(ctx context.Context, productID int, fields entity.Userfields) error

	// Debug reports the current integration state.
	Debug(ctx context.Context) (DebugOutput, error)
}
