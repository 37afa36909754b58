package impl

import (
	"context"
	"fmt"
	"log/slog"

	"pantrylink/config"
	"pantrylink/internal/domain/entity"
	"pantrylink/internal/domain/service"
	"pantrylink/internal/infra/memory"
	"pantrylink/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type listService struct {
	config   *config.Config
	logger   *slog.Logger
	pantry   service.PantryClient
	events   service.EventPublisher
	snapshot *memory.Snapshot
	registry *memory.Registry
	sync     usecase.SyncUsecase
}

// ListServiceParams holds dependencies for ListService, injected by Fx.
type ListServiceParams struct {
	fx.In

	Config   *config.Config
	Logger   *slog.Logger
	Pantry   service.PantryClient
	Events   service.EventPublisher
	Snapshot *memory.Snapshot
	Registry *memory.Registry
	Sync     usecase.SyncUsecase
}

// NewListService creates the shopping list command service.
func NewListService(params ListServiceParams) usecase.ListUsecase {
	return &listService{
		config:   params.Config,
		logger:   params.Logger,
		pantry:   params.Pantry,
		events:   params.Events,
		snapshot: params.Snapshot,
		registry: params.Registry,
		sync:     params.Sync,
	}
}

// AddToList puts the resolved product on a shopping list.
func (s *listService) AddToList(ctx context.Context, input *usecase.ListInput) error {
	return s.mutate(ctx, input, service.EventAddedToList, s.pantry.AddToShoppingList)
}

// SubtractFromList removes an amount of the resolved product from a
// shopping list.
func (s *listService) SubtractFromList(ctx context.Context, input *usecase.ListInput) error {
	return s.mutate(ctx, input, service.EventSubtractFromList, s.pantry.RemoveFromShoppingList)
}

func (s *listService) mutate(ctx context.Context, input *usecase.ListInput, eventName string, op func(ctx context.Context, productID, listID int, amount float64) error) error {
	amount := input.Amount
	if amount == 0 {
		amount = 1
	}
	listID := input.ShoppingListID
	if listID == 0 {
		listID = s.config.Pantry.DefaultShoppingListID
	}

	view, ok, err := resolveProduct(ctx, s.registry, s.pantry, input.EntityRef)
	if err != nil {
		publishErrorEvent(ctx, s.logger, s.events, input.EntityRef, err.Error())

		return err
	}
	if !ok {
		// Success without effect: nothing matched, nothing was mutated.
		s.logger.Warn("entity reference did not resolve", slog.String("ref", input.EntityRef))
		publishErrorEvent(ctx, s.logger, s.events, input.EntityRef, "product not found: "+input.EntityRef)

		return nil
	}

	if err := op(ctx, view.Product.ID, listID, amount); err != nil {
		publishErrorEvent(ctx, s.logger, s.events, view.Key(), err.Error())

		return errors.Wrapf(err, "failed to update shopping list %d", listID)
	}

	s.refreshItems(ctx)
	s.sync.RequestStateRefresh(ctx, view.Key())
	s.sync.RequestStateRefresh(ctx, entity.ShoppingListKey(listID))

	publishEvent(ctx, s.logger, s.events, service.Event{Name: eventName, EntityID: view.Key()})

	return nil
}

// ClearList removes every item from a shopping list.
func (s *listService) ClearList(ctx context.Context, input *usecase.ClearListInput) error {
	listID := input.ShoppingListID
	if listID == 0 {
		listID = s.config.Pantry.DefaultShoppingListID
	}
	key := entity.ShoppingListKey(listID)

	if err := s.pantry.ClearShoppingList(ctx, listID); err != nil {
		publishErrorEvent(ctx, s.logger, s.events, key, err.Error())

		return errors.Wrapf(err, "failed to clear shopping list %d", listID)
	}

	s.refreshItems(ctx)
	s.sync.RequestStateRefresh(ctx, key)
	publishEvent(ctx, s.logger, s.events, service.Event{Name: service.EventListCleared, EntityID: key})

	return nil
}

// CompleteItem toggles the done flag of one shopping list item. The done
// flag defaults to true when omitted.
func (s *listService) CompleteItem(ctx context.Context, input *usecase.CompleteItemInput) error {
	done := true
	if input.Done != nil {
		done = *input.Done
	}

	item, ok := s.itemByID(input.ItemID)
	if !ok {
		// Success without effect: the item is not in the cached list state.
		s.logger.Warn("shopping list item not found", slog.Int("item_id", input.ItemID))
		publishErrorEvent(ctx, s.logger, s.events, "", fmt.Sprintf("shopping list item %d not found", input.ItemID))

		return nil
	}
	key := entity.ShoppingListKey(item.ShoppingListID)

	if err := s.pantry.CompleteShoppingListItem(ctx, input.ItemID, done); err != nil {
		publishErrorEvent(ctx, s.logger, s.events, key, err.Error())

		return errors.Wrapf(err, "failed to complete shopping list item %d", input.ItemID)
	}

	s.refreshItems(ctx)
	s.sync.RequestStateRefresh(ctx, key)
	publishEvent(ctx, s.logger, s.events, service.Event{Name: service.EventItemCompleted, EntityID: key})

	return nil
}

func (s *listService) itemByID(id int) (entity.ShoppingListItem, bool) {
	for _, item := range s.snapshot.ShoppingListItems() {
		if item.ID == id {
			return item, true
		}
	}

	return entity.ShoppingListItem{}, false
}

func (s *listService) refreshItems(ctx context.Context) {
	if err := s.sync.Refresh(ctx, usecase.RefreshInput{
		Categories: []entity.Category{entity.CategoryShoppingListItems},
		Force:      true,
	}); err != nil {
		s.logger.Warn("failed to refresh shopping list items", slog.Any("error", err))
	}
}
