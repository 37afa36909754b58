// Package poller runs the periodic sync loop.
package poller

import (
	"context"
	"log/slog"
	"time"

	"pantrylink/config"
	"pantrylink/internal/delivery"
	"pantrylink/internal/usecase"

	"go.uber.org/fx"
)

// PollerParams holds dependencies for the sync poller, injected by Fx.
type PollerParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
	SyncUC usecase.SyncUsecase
}

type poller struct {
	cfg    *config.Config
	logger *slog.Logger
	syncUC usecase.SyncUsecase
	stop   chan struct{}
}

// NewPoller creates the periodic sync delivery.
func NewPoller(params PollerParams) (delivery.Delivery, error) {
	p := &poller{
		cfg:    params.Config,
		logger: params.Logger,
		syncUC: params.SyncUC,
		stop:   make(chan struct{}),
	}

	params.Append(fx.Hook{
		OnStop: p.shutdown,
	})

	return p, nil
}

// Serve runs one sync immediately so entities exist before the first tick,
// then one per configured interval until shutdown. Passes never overlap;
// the engine serializes refreshes internally.
func (p *poller) Serve(ctx context.Context) error {
	interval := p.cfg.Sync.Interval
	p.logger.Info("Starting sync poller", slog.Duration("interval", interval))

	p.runOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.runOnce(ctx)
		case <-p.stop:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

func (p *poller) runOnce(ctx context.Context) {
	if err := p.syncUC.Sync(ctx); err != nil {
		p.logger.Error("sync pass failed", slog.Any("error", err))
	}
}

func (p *poller) shutdown(ctx context.Context) error {
	p.logger.Info("Shutting down sync poller")
	close(p.stop)

	return nil
}
