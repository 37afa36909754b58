package main

import (
	"context"
	"log/slog"
	"os"

	"pantrylink/config"
	"pantrylink/internal/delivery"
	"pantrylink/internal/delivery/http"
	"pantrylink/internal/delivery/http/router/handler"
	"pantrylink/internal/delivery/poller"
	"pantrylink/internal/domain/service"
	logs "pantrylink/internal/infra/log"
	"pantrylink/internal/infra/memory"
	"pantrylink/internal/infra/pantry"
	"pantrylink/internal/infra/platform"
	"pantrylink/internal/infra/store"
	"pantrylink/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		memory.NewSnapshot,
		memory.NewRegistry,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			pantry.New,
			newStoreClient,
			newPlatform,
		),
	)
}

// newStoreClient maps the configured vendor name to its client. A missing
// store section yields the no-op vendor.
func newStoreClient(cfg *config.Config, logger *slog.Logger) service.StoreClient {
	return store.ForName(cfg.Store, logger)
}

// newPlatform selects the host platform adapter: webhook callbacks when
// endpoints are configured, log lines otherwise. The same adapter carries
// both entity state and domain events.
func newPlatform(cfg *config.Config, logger *slog.Logger) (service.Platform, service.EventPublisher) {
	if cfg.Platform == nil {
		adapter := platform.NewLogAdapter(logger)

		return adapter, adapter
	}

	webhook := platform.NewWebhook(cfg.Platform, logger)

	return webhook, webhook
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSyncService,
			impl.NewListService,
			impl.NewProductService,
			impl.NewCartService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewServiceHandler,
			handler.NewEntityHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				poller.NewPoller,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
