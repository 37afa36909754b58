package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"pantrylink/config"
	"pantrylink/internal/domain/entity"
	"pantrylink/internal/domain/service"
	"pantrylink/internal/infra/memory"
	"pantrylink/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type productService struct {
	config   *config.Config
	logger   *slog.Logger
	pantry   service.PantryClient
	store    service.StoreClient
	platform service.Platform
	events   service.EventPublisher
	snapshot *memory.Snapshot
	registry *memory.Registry
	sync     usecase.SyncUsecase
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	Config   *config.Config
	Logger   *slog.Logger
	Pantry   service.PantryClient
	Store    service.StoreClient
	Platform service.Platform
	Events   service.EventPublisher
	Snapshot *memory.Snapshot
	Registry *memory.Registry
	Sync     usecase.SyncUsecase
}

// NewProductService creates the product command service.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		config:   params.Config,
		logger:   params.Logger,
		pantry:   params.Pantry,
		store:    params.Store,
		platform: params.Platform,
		events:   params.Events,
		snapshot: params.Snapshot,
		registry: params.Registry,
		sync:     params.Sync,
	}
}

// AddProduct updates the product already registered under the barcode, or
// looks the barcode up at the configured store and creates it remotely.
func (s *productService) AddProduct(ctx context.Context, input *usecase.AddProductInput) error {
	if view, ok := s.registry.GetByBarcode(input.Barcode); ok {
		if product, ok := view.(*entity.ProductView); ok {
			return s.updateExisting(ctx, product, input)
		}
	}

	return s.createFromStore(ctx, input)
}

func (s *productService) updateExisting(ctx context.Context, view *entity.ProductView, input *usecase.AddProductInput) error {
	update := service.ProductUpdate{
		ProductGroupID: &input.ProductGroupID,
		LocationID:     &input.LocationID,
	}
	if input.Description != "" {
		update.Description = &input.Description
	}

	if err := s.pantry.UpdateProduct(ctx, view.Product.ID, update); err != nil {
		publishErrorEvent(ctx, s.logger, s.events, view.Key(), err.Error())

		return errors.Wrap(err, "failed to update product")
	}

	s.refreshProducts(ctx)
	s.sync.RequestStateRefresh(ctx, view.Key())
	publishEvent(ctx, s.logger, s.events, service.Event{
		Name:     service.EventProductUpdated,
		EntityID: view.Key(),
	})

	return nil
}

func (s *productService) createFromStore(ctx context.Context, input *usecase.AddProductInput) error {
	found, err := s.store.ProductByBarcode(ctx, input.Barcode)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			message := fmt.Sprintf("barcode %s was not found at %s", input.Barcode, s.store.Name())
			s.logger.Warn("store lookup missed",
				slog.String("barcode", input.Barcode),
				slog.String("store", s.store.Name()))
			publishErrorEvent(ctx, s.logger, s.events, "", message)

			return nil
		}
		publishErrorEvent(ctx, s.logger, s.events, "", err.Error())

		return errors.Wrap(err, "failed to search store catalog")
	}

	// The remote id is derived from the barcode so repeated additions of the
	// same product collide instead of duplicating.
	id, err := strconv.Atoi(input.Barcode)
	if err != nil {
		publishErrorEvent(ctx, s.logger, s.events, "", "barcode is not numeric: "+input.Barcode)

		return errors.Wrapf(err, "barcode %s is not numeric", input.Barcode)
	}

	product := service.NewProduct{
		ID:             id,
		Name:           found.Name,
		Barcode:        input.Barcode,
		Description:    input.Description,
		ProductGroupID: input.ProductGroupID,
		QuIDPurchase:   1,
		LocationID:     input.LocationID,
		Picture:        found.Picture,
	}
	if err := s.pantry.CreateProduct(ctx, product); err != nil {
		publishErrorEvent(ctx, s.logger, s.events, "", err.Error())

		return errors.Wrap(err, "failed to create product")
	}

	fields := entity.Userfields{}
	if found.Price > 0 {
		fields[entity.UserfieldPrice] = strconv.FormatFloat(found.Price, 'f', -1, 64)
		fields[entity.UserfieldStore] = found.Store
	}
	if found.Metadata != "" {
		fields[entity.UserfieldMetadata] = found.Metadata
	}
	if len(fields) != 0 {
		if err := s.pantry.SetUserfields(ctx, id, fields); err != nil {
			s.logger.Warn("failed to set userfields on new product",
				slog.Int("product_id", id),
				slog.Any("error", err))
		}
	}

	s.refreshProducts(ctx)

	created, ok := s.snapshot.ProductByID(id)
	if !ok {
		return errors.Errorf("product %d missing after refresh", id)
	}
	view := buildProductView(created, s.snapshot)
	if s.registry.Add(view) {
		if err := s.platform.PublishState(ctx, view); err != nil {
			s.logger.Warn("failed to publish entity state",
				slog.String("key", view.Key()),
				slog.Any("error", err))
		}
	}
	publishEvent(ctx, s.logger, s.events, service.Event{
		Name:     service.EventProductAdded,
		EntityID: view.Key(),
	})

	return nil
}

// RemoveProduct deletes the resolved product remotely first; only a
// successful remote delete touches local state.
func (s *productService) RemoveProduct(ctx context.Context, input *usecase.EntityRefInput) error {
	view, ok, err := resolveProduct(ctx, s.registry, s.pantry, input.EntityRef)
	if err != nil {
		publishErrorEvent(ctx, s.logger, s.events, input.EntityRef, err.Error())

		return err
	}
	if !ok {
		s.logger.Warn("entity reference did not resolve", slog.String("ref", input.EntityRef))
		publishErrorEvent(ctx, s.logger, s.events, input.EntityRef, "product not found: "+input.EntityRef)

		return nil
	}

	if err := s.pantry.DeleteProduct(ctx, view.Product.ID); err != nil {
		publishErrorEvent(ctx, s.logger, s.events, view.Key(), err.Error())

		return errors.Wrap(err, "failed to delete product")
	}

	key := view.Key()
	s.registry.Remove(key)
	if err := s.platform.RemoveEntity(ctx, key); err != nil {
		s.logger.Warn("failed to remove platform entity",
			slog.String("key", key),
			slog.Any("error", err))
	}

	s.refreshProducts(ctx)
	publishEvent(ctx, s.logger, s.events, service.Event{
		Name:     service.EventProductRemoved,
		EntityID: key,
	})

	return nil
}

// AddFavorite flags the resolved product as a favorite.
func (s *productService) AddFavorite(ctx context.Context, input *usecase.EntityRefInput) error {
	return s.setFavorite(ctx, input, true)
}

// RemoveFavorite clears the favorite flag.
func (s *productService) RemoveFavorite(ctx context.Context, input *usecase.EntityRefInput) error {
	return s.setFavorite(ctx, input, false)
}

func (s *productService) setFavorite(ctx context.Context, input *usecase.EntityRefInput, favorite bool) error {
	view, ok, err := resolveProduct(ctx, s.registry, s.pantry, input.EntityRef)
	if err != nil {
		publishErrorEvent(ctx, s.logger, s.events, input.EntityRef, err.Error())

		return err
	}
	if !ok {
		s.logger.Warn("entity reference did not resolve", slog.String("ref", input.EntityRef))
		publishErrorEvent(ctx, s.logger, s.events, input.EntityRef, "product not found: "+input.EntityRef)

		return nil
	}

	value := "0"
	if favorite {
		value = "1"
	}
	fields := entity.Userfields{entity.UserfieldFavorite: value}
	if err := s.pantry.SetUserfields(ctx, view.Product.ID, fields); err != nil {
		publishErrorEvent(ctx, s.logger, s.events, view.Key(), err.Error())

		return errors.Wrap(err, "failed to set favorite userfield")
	}

	// Userfield writes do not reliably bump the staleness token, so the
	// products category is always force refreshed here.
	s.refreshProducts(ctx)
	s.sync.RequestStateRefresh(ctx, view.Key())
	publishEvent(ctx, s.logger, s.events, service.Event{
		Name:     service.EventProductUpdated,
		EntityID: view.Key(),
	})

	return nil
}

func (s *productService) refreshProducts(ctx context.Context) {
	if err := s.sync.Refresh(ctx, usecase.RefreshInput{
		Categories:        []entity.Category{entity.CategoryProducts},
		Force:             true,
		IncludeUserfields: true,
	}); err != nil {
		s.logger.Warn("failed to refresh products", slog.Any("error", err))
	}
}
