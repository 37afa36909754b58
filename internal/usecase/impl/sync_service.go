package impl

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"pantrylink/config"
	"pantrylink/internal/domain/entity"
	"pantrylink/internal/domain/service"
	"pantrylink/internal/errors"
	"pantrylink/internal/infra/memory"
	"pantrylink/internal/usecase"

	"go.uber.org/fx"
)

type syncService struct {
	config   *config.Config
	logger   *slog.Logger
	pantry   service.PantryClient
	store    service.StoreClient
	platform service.Platform
	events   service.EventPublisher
	snapshot *memory.Snapshot
	registry *memory.Registry

	// mu serializes refresh passes so the per-category tokens and the
	// snapshot settle together.
	mu         sync.Mutex
	lastTokens map[entity.Category]time.Time
}

// SyncServiceParams holds dependencies for SyncService, injected by Fx.
type SyncServiceParams struct {
	fx.In

	Config   *config.Config
	Logger   *slog.Logger
	Pantry   service.PantryClient
	Store    service.StoreClient
	Platform service.Platform
	Events   service.EventPublisher
	Snapshot *memory.Snapshot
	Registry *memory.Registry
}

// NewSyncService creates the cache/sync engine.
func NewSyncService(params SyncServiceParams) usecase.SyncUsecase {
	return &syncService{
		config:     params.Config,
		logger:     params.Logger,
		pantry:     params.Pantry,
		store:      params.Store,
		platform:   params.Platform,
		events:     params.Events,
		snapshot:   params.Snapshot,
		registry:   params.Registry,
		lastTokens: make(map[entity.Category]time.Time),
	}
}

// Refresh fetches the staleness token once and refetches every requested
// category whose last-seen token differs from it.
func (s *syncService) Refresh(ctx context.Context, input usecase.RefreshInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.refresh(ctx, input)
}

func (s *syncService) refresh(ctx context.Context, input usecase.RefreshInput) error {
	token, err := s.pantry.LastChanged(ctx)
	if err != nil {
		// Without the token no category can be judged stale or fresh, so the
		// whole pass aborts before any fetch.
		return errors.Wrap(err, "failed to fetch staleness token")
	}

	requested := make(map[entity.Category]bool, len(input.Categories))
	for _, category := range input.Categories {
		requested[category] = true
	}

	var failures []error
	// Fixed iteration order keeps partial success deterministic.
	for _, category := range entity.AllCategories() {
		if len(input.Categories) != 0 && !requested[category] {
			continue
		}

		last, seen := s.lastTokens[category]
		if !input.Force && seen && last.Equal(token) {
			continue
		}

		if err := s.fetchCategory(ctx, category, input.IncludeUserfields); err != nil {
			// The category's previous contents and token stay untouched so
			// the next pass retries it.
			failures = append(failures, errors.Wrapf(err, "failed to refresh %s", category))

			continue
		}
		s.lastTokens[category] = token
	}

	return errors.Join(failures...)
}

func (s *syncService) fetchCategory(ctx context.Context, category entity.Category, includeUserfields bool) error {
	switch category {
	case entity.CategoryProducts:
		products, err := s.pantry.Products(ctx)
		if err != nil {
			return err
		}
		if includeUserfields {
			for i := range products {
				fields, err := s.pantry.Userfields(ctx, products[i].ID)
				if err != nil {
					return err
				}
				products[i].Userfields = fields
			}
		}
		s.snapshot.ReplaceProducts(products)
	case entity.CategoryShoppingListItems:
		items, err := s.pantry.ShoppingListItems(ctx)
		if err != nil {
			return err
		}
		s.snapshot.ReplaceShoppingListItems(items)
	case entity.CategoryShoppingLists:
		lists, err := s.pantry.ShoppingLists(ctx)
		if err != nil {
			return err
		}
		s.snapshot.ReplaceShoppingLists(lists)
	case entity.CategoryLocations:
		locations, err := s.pantry.Locations(ctx)
		if err != nil {
			return err
		}
		s.snapshot.ReplaceLocations(locations)
	case entity.CategoryQuantityUnits:
		units, err := s.pantry.QuantityUnits(ctx)
		if err != nil {
			return err
		}
		s.snapshot.ReplaceQuantityUnits(units)
	case entity.CategoryProductGroups:
		groups, err := s.pantry.ProductGroups(ctx)
		if err != nil {
			return err
		}
		s.snapshot.ReplaceProductGroups(groups)
	default:
		return errors.Errorf("unknown category %q", category)
	}

	return nil
}

// Sync runs the full pipeline: force refresh, registry reconciliation,
// optional store price resolution, a state publish for every entity and a
// sync_done event.
func (s *syncService) Sync(ctx context.Context) error {
	s.logger.Info("sync started")

	if info, err := s.pantry.Info(ctx); err != nil {
		s.logger.Warn("failed to read server info", slog.Any("error", err))
	} else {
		s.snapshot.SetServerVersion(info.Version)
	}

	if err := s.Refresh(ctx, usecase.RefreshInput{
		Force:             true,
		IncludeUserfields: s.config.Sync.IncludeUserfields,
	}); err != nil {
		publishErrorEvent(ctx, s.logger, s.events, "", err.Error())

		return errors.Wrap(err, "failed to refresh during sync")
	}

	if s.config.Seed != nil {
		if err := s.ensureSeeded(ctx); err != nil {
			s.logger.Warn("seeding incomplete", slog.Any("error", err))
		}
	}

	s.reconcile(ctx)

	if s.config.Sync.ResolvePrices {
		if err := s.resolvePrices(ctx); err != nil {
			s.logger.Warn("price resolution incomplete", slog.Any("error", err))
		}
	}

	views := s.registry.All()
	for _, view := range views {
		resolved := resolvedView(view, s.snapshot, s.registry)
		if err := s.platform.PublishState(ctx, resolved); err != nil {
			s.logger.Warn("failed to publish entity state",
				slog.String("key", resolved.Key()),
				slog.Any("error", err))
		}
	}

	publishEvent(ctx, s.logger, s.events, service.Event{Name: service.EventSyncDone})
	s.logger.Info("sync finished", slog.Int("entities", len(views)))

	return nil
}

// reconcile converges the registry with the snapshot: every cached product
// and shopping list gets a view, views whose backing record disappeared are
// removed from the registry and the host platform.
func (s *syncService) reconcile(ctx context.Context) {
	productKeys := make(map[string]bool)
	for _, product := range s.snapshot.Products() {
		key := entity.ProductKey(product.ID)
		productKeys[key] = true
		if !s.registry.Exists(key) {
			s.registry.Add(buildProductView(product, s.snapshot))
		}
	}

	listKeys := make(map[string]bool)
	for _, list := range s.snapshot.ShoppingLists() {
		key := entity.ShoppingListKey(list.ID)
		listKeys[key] = true
		if !s.registry.Exists(key) {
			s.registry.Add(buildShoppingListView(list, s.snapshot))
		}
	}

	if !s.registry.Exists(entity.OverviewKey) {
		s.registry.Add(&entity.OverviewView{ServerVersion: s.snapshot.ServerVersion()})
	}

	for _, view := range s.registry.AllOfKind(entity.KindProduct) {
		if !productKeys[view.Key()] {
			s.removeEntity(ctx, view.Key())
		}
	}
	for _, view := range s.registry.AllOfKind(entity.KindShoppingList) {
		if !listKeys[view.Key()] {
			s.removeEntity(ctx, view.Key())
		}
	}
}

func (s *syncService) removeEntity(ctx context.Context, key string) {
	s.registry.Remove(key)
	if err := s.platform.RemoveEntity(ctx, key); err != nil {
		s.logger.Warn("failed to remove platform entity",
			slog.String("key", key),
			slog.Any("error", err))
	}
}

// ensureSeeded creates the configured bootstrap objects that are missing
// from the server. Created categories are refetched so the snapshot sees
// them in the same pass.
func (s *syncService) ensureSeeded(ctx context.Context) error {
	seed := s.config.Seed

	var failures []error
	created := make(map[entity.Category]bool)

	groupIDs := make(map[int]bool)
	for _, group := range s.snapshot.ProductGroups() {
		groupIDs[group.ID] = true
	}
	for name, id := range seed.ProductGroups {
		if groupIDs[id] {
			continue
		}
		if err := s.pantry.CreateProductGroup(ctx, id, name); err != nil {
			failures = append(failures, errors.Wrapf(err, "failed to seed product group %s", name))

			continue
		}
		created[entity.CategoryProductGroups] = true
	}

	locationIDs := make(map[int]bool)
	for _, location := range s.snapshot.Locations() {
		locationIDs[location.ID] = true
	}
	for name, id := range seed.Locations {
		if locationIDs[id] {
			continue
		}
		if err := s.pantry.CreateLocation(ctx, id, name); err != nil {
			failures = append(failures, errors.Wrapf(err, "failed to seed location %s", name))

			continue
		}
		created[entity.CategoryLocations] = true
	}

	unitIDs := make(map[int]bool)
	for _, unit := range s.snapshot.QuantityUnits() {
		unitIDs[unit.ID] = true
	}
	for name, id := range seed.QuantityUnits {
		if unitIDs[id] {
			continue
		}
		if err := s.pantry.CreateQuantityUnit(ctx, id, name); err != nil {
			failures = append(failures, errors.Wrapf(err, "failed to seed quantity unit %s", name))

			continue
		}
		created[entity.CategoryQuantityUnits] = true
	}

	listIDs := make(map[int]bool)
	for _, list := range s.snapshot.ShoppingLists() {
		listIDs[list.ID] = true
	}
	for name, id := range seed.ShoppingLists {
		if listIDs[id] {
			continue
		}
		if err := s.pantry.CreateShoppingList(ctx, id, name); err != nil {
			failures = append(failures, errors.Wrapf(err, "failed to seed shopping list %s", name))

			continue
		}
		created[entity.CategoryShoppingLists] = true
	}

	if len(created) > 0 {
		categories := make([]entity.Category, 0, len(created))
		for _, category := range entity.AllCategories() {
			if created[category] {
				categories = append(categories, category)
			}
		}
		if err := s.Refresh(ctx, usecase.RefreshInput{
			Categories: categories,
			Force:      true,
		}); err != nil {
			failures = append(failures, err)
		}
	}

	return errors.Join(failures...)
}

// resolvePrices re-resolves product prices from the store catalog and writes
// them back as userfields. Lookup misses are skipped silently; transport and
// write failures are collected and the rest of the products still settle.
func (s *syncService) resolvePrices(ctx context.Context) error {
	if s.config.Store == nil {
		return nil
	}

	var failures []error
	updated := false
	for _, product := range s.snapshot.Products() {
		barcode := product.FirstBarcode()
		if barcode == "" {
			continue
		}

		found, err := s.store.ProductByBarcode(ctx, barcode)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				continue
			}
			failures = append(failures, errors.Wrapf(err, "failed to resolve price for %s", barcode))

			continue
		}
		if found.Price <= 0 {
			continue
		}

		fields := entity.Userfields{
			entity.UserfieldPrice: strconv.FormatFloat(found.Price, 'f', -1, 64),
			entity.UserfieldStore: found.Store,
		}
		if err := s.pantry.SetUserfields(ctx, product.ID, fields); err != nil {
			failures = append(failures, errors.Wrapf(err, "failed to store price for %s", barcode))

			continue
		}
		updated = true
	}

	if updated {
		// The userfield writes bumped the remote token; pull the enriched
		// products back before the state publish.
		if err := s.Refresh(ctx, usecase.RefreshInput{
			Categories:        []entity.Category{entity.CategoryProducts},
			Force:             true,
			IncludeUserfields: true,
		}); err != nil {
			failures = append(failures, err)
		}
	}

	return errors.Join(failures...)
}

// Objects returns the cached contents of one category without fetching.
func (s *syncService) Objects(category entity.Category) any {
	return s.snapshot.Objects(category)
}

// Entities returns freshly resolved copies of every registered view.
func (s *syncService) Entities() []entity.View {
	views := s.registry.All()
	resolved := make([]entity.View, 0, len(views))
	for _, view := range views {
		resolved = append(resolved, resolvedView(view, s.snapshot, s.registry))
	}

	return resolved
}

// Entity returns a freshly resolved copy of the view registered under key.
func (s *syncService) Entity(key string) (entity.View, bool) {
	view, ok := s.registry.Get(key)
	if !ok {
		return nil, false
	}

	return resolvedView(view, s.snapshot, s.registry), true
}

// RequestStateRefresh recomputes one entity and publishes it to the host
// platform. Unknown keys are a no-op.
func (s *syncService) RequestStateRefresh(ctx context.Context, key string) {
	view, ok := s.registry.Get(key)
	if !ok {
		return
	}

	resolved := resolvedView(view, s.snapshot, s.registry)
	if err := s.platform.PublishState(ctx, resolved); err != nil {
		s.logger.Warn("failed to publish entity state",
			slog.String("key", key),
			slog.Any("error", err))
	}
}

func (s *syncService) FetchUserfields(ctx context.Context, productID int) (entity.Userfields, error) {
	fields, err := s.pantry.Userfields(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch userfields")
	}

	return fields, nil
}

func (s *syncService) SetUserfields(ctx context.Context, productID int, fields entity.Userfields) error {
	if err := s.pantry.SetUserfields(ctx, productID, fields); err != nil {
		return errors.Wrap(err, "failed to set userfields")
	}

	return nil
}

// Debug reports the current integration state.
func (s *syncService) Debug(ctx context.Context) (usecase.DebugOutput, error) {
	s.mu.Lock()
	tokens := make(map[string]time.Time, len(s.lastTokens))
	for category, token := range s.lastTokens {
		tokens[string(category)] = token
	}
	s.mu.Unlock()

	counts := map[string]int{
		string(entity.CategoryProducts):          len(s.snapshot.Products()),
		string(entity.CategoryShoppingListItems): len(s.snapshot.ShoppingListItems()),
		string(entity.CategoryShoppingLists):     len(s.snapshot.ShoppingLists()),
		string(entity.CategoryLocations):         len(s.snapshot.Locations()),
		string(entity.CategoryQuantityUnits):     len(s.snapshot.QuantityUnits()),
		string(entity.CategoryProductGroups):     len(s.snapshot.ProductGroups()),
	}

	views := s.registry.All()
	keys := make([]string, 0, len(views))
	for _, view := range views {
		keys = append(keys, view.Key())
	}

	return usecase.DebugOutput{
		IntegrationVersion: entity.IntegrationVersion,
		ServerVersion:      s.snapshot.ServerVersion(),
		TotalProducts:      len(s.snapshot.Products()),
		CachedCounts:       counts,
		LastTokens:         tokens,
		Entities:           keys,
	}, nil
}
