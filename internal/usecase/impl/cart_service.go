package impl

import (
	"context"
	"encoding/json"
	"log/slog"

	"pantrylink/config"
	"pantrylink/internal/domain/service"
	"pantrylink/internal/infra/memory"
	"pantrylink/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type cartService struct {
	config   *config.Config
	logger   *slog.Logger
	store    service.StoreClient
	events   service.EventPublisher
	snapshot *memory.Snapshot
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	Config   *config.Config
	Logger   *slog.Logger
	Store    service.StoreClient
	Events   service.EventPublisher
	Snapshot *memory.Snapshot
}

// NewCartService creates the store cart command service.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		config:   params.Config,
		logger:   params.Logger,
		store:    params.Store,
		events:   params.Events,
		snapshot: params.Snapshot,
	}
}

// vendorMetadata is the blob stored in the metadata userfield when a product
// is created from a store catalog entry.
type vendorMetadata struct {
	ID int `json:"id"`
}

// FillCart logs in and pushes every resolvable item of the shopping list to
// the store cart.
func (s *cartService) FillCart(ctx context.Context, input *usecase.FillCartInput) error {
	listID := input.ShoppingListID
	if listID == 0 {
		listID = s.config.Pantry.DefaultShoppingListID
	}

	items := s.cartItems(listID)
	if len(items) == 0 {
		s.logger.Info("no cart-syncable items on list", slog.Int("list_id", listID))

		return nil
	}

	if err := s.withSession(ctx, func() error { return s.store.FillCart(ctx, items) }); err != nil {
		publishErrorEvent(ctx, s.logger, s.events, "", err.Error())

		return errors.Wrap(err, "failed to fill store cart")
	}

	s.logger.Info("cart filled",
		slog.String("store", s.store.Name()),
		slog.Int("items", len(items)))

	return nil
}

// EmptyCart logs in and empties the store cart.
func (s *cartService) EmptyCart(ctx context.Context) error {
	if err := s.withSession(ctx, func() error { return s.store.EmptyCart(ctx) }); err != nil {
		publishErrorEvent(ctx, s.logger, s.events, "", err.Error())

		return errors.Wrap(err, "failed to empty store cart")
	}

	return nil
}

// withSession wraps a cart operation in a login/logout pair.
func (s *cartService) withSession(ctx context.Context, op func() error) error {
	if s.config.Store == nil {
		return errors.WithStack(service.ErrCartUnsupported)
	}

	if err := s.store.Login(ctx, s.config.Store.Username, s.config.Store.Password); err != nil {
		return errors.Wrap(err, "failed to log in to store")
	}
	defer func() {
		if err := s.store.Logout(ctx); err != nil {
			s.logger.Warn("failed to log out of store", slog.Any("error", err))
		}
	}()

	return op()
}

// cartItems maps a shopping list to vendor cart lines. Products without a
// usable vendor metadata userfield cannot be referenced in the cart and are
// skipped.
func (s *cartService) cartItems(listID int) []service.CartItem {
	var items []service.CartItem
	for _, item := range s.snapshot.ShoppingListItems() {
		if item.ShoppingListID != listID {
			continue
		}
		product, ok := s.snapshot.ProductByID(item.ProductID)
		if !ok {
			continue
		}
		raw := product.Userfields.Metadata()
		if raw == "" {
			continue
		}
		var meta vendorMetadata
		if err := json.Unmarshal([]byte(raw), &meta); err != nil || meta.ID == 0 {
			s.logger.Warn("unusable product metadata", slog.Int("product_id", product.ID))

			continue
		}
		items = append(items, service.CartItem{Code: meta.ID, Quantity: item.Amount})
	}

	return items
}
