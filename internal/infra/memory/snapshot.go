// Package memory holds the in-process state of the integration: the cached
// category snapshot and the entity registry. Nothing here is persisted; the
// remote server is always the system of record.
package memory

import (
	"sync"

	"pantrylink/internal/domain/entity"
)

// Snapshot is the cached copy of every resource category. A category's
// contents are fully replaced on each successful refresh; a failed fetch
// never touches the previous contents. All accessors return copies so
// callers can iterate without holding the lock.
type Snapshot struct {
	mu sync.RWMutex

	products          []entity.Product
	shoppingListItems []entity.ShoppingListItem
	shoppingLists     []entity.ShoppingList
	locations         []entity.Location
	quantityUnits     []entity.QuantityUnit
	productGroups     []entity.ProductGroup

	serverVersion string
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

func (s *Snapshot) ReplaceProducts(products []entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}

func (s *Snapshot) Products() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copySlice(s.products)
}

func (s *Snapshot) ReplaceShoppingListItems(items []entity.ShoppingListItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shoppingListItems = items
}

func (s *Snapshot) ShoppingListItems() []entity.ShoppingListItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copySlice(s.shoppingListItems)
}

func (s *Snapshot) ReplaceShoppingLists(lists []entity.ShoppingList) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shoppingLists = lists
}

func (s *Snapshot) ShoppingLists() []entity.ShoppingList {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copySlice(s.shoppingLists)
}

func (s *Snapshot) ReplaceLocations(locations []entity.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations = locations
}

func (s *Snapshot) Locations() []entity.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copySlice(s.locations)
}

func (s *Snapshot) ReplaceQuantityUnits(units []entity.QuantityUnit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quantityUnits = units
}

func (s *Snapshot) QuantityUnits() []entity.QuantityUnit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copySlice(s.quantityUnits)
}

func (s *Snapshot) ReplaceProductGroups(groups []entity.ProductGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.productGroups = groups
}

func (s *Snapshot) ProductGroups() []entity.ProductGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copySlice(s.productGroups)
}

// ProductByID scans the cached products for an id.
func (s *Snapshot) ProductByID(id int) (entity.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, product := range s.products {
		if product.ID == id {
			return product, true
		}
	}

	return entity.Product{}, false
}

// Objects returns the cached contents of one category as a serializable
// value. Never triggers a fetch; an unpopulated category yields an empty
// slice.
func (s *Snapshot) Objects(category entity.Category) any {
	switch category {
	case entity.CategoryProducts:
		return s.Products()
	case entity.CategoryShoppingListItems:
		return s.ShoppingListItems()
	case entity.CategoryShoppingLists:
		return s.ShoppingLists()
	case entity.CategoryLocations:
		return s.Locations()
	case entity.CategoryQuantityUnits:
		return s.QuantityUnits()
	case entity.CategoryProductGroups:
		return s.ProductGroups()
	default:
		return nil
	}
}

func (s *Snapshot) SetServerVersion(version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serverVersion = version
}

func (s *Snapshot) ServerVersion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.serverVersion
}

func copySlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)

	return out
}
