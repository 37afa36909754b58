package memory

import (
	"testing"

	"pantrylink/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productView(id int, name string, barcodes ...string) *entity.ProductView {
	return &entity.ProductView{Product: entity.Product{ID: id, Name: name, Barcodes: barcodes}}
}

func TestRegistry_AddDuplicateKeyIsNoop(t *testing.T) {
	registry := NewRegistry()

	first := productView(1, "Milk")
	assert.True(t, registry.Add(first))
	assert.False(t, registry.Add(productView(1, "Other Milk")))

	view, ok := registry.Get(entity.ProductKey(1))
	require.True(t, ok)
	// The first registration wins.
	assert.Equal(t, "Milk", view.Name())
}

func TestRegistry_GetByBarcode(t *testing.T) {
	registry := NewRegistry()
	registry.Add(productView(1, "Milk", "7290001"))
	registry.Add(productView(2, "Bread", "7290002", "7290003"))
	registry.Add(&entity.ShoppingListView{List: entity.ShoppingList{ID: 1, Name: "Groceries"}})

	view, ok := registry.GetByBarcode("7290002")
	require.True(t, ok)
	assert.Equal(t, entity.ProductKey(2), view.Key())

	// Only the first barcode is indexed.
	_, ok = registry.GetByBarcode("7290003")
	assert.False(t, ok)

	// An empty query never matches a product without barcodes.
	registry.Add(productView(3, "Loose Apples"))
	_, ok = registry.GetByBarcode("")
	assert.False(t, ok)
}

func TestRegistry_RemoveKeepsOrder(t *testing.T) {
	registry := NewRegistry()
	registry.Add(productView(1, "a"))
	registry.Add(productView(2, "b"))
	registry.Add(productView(3, "c"))

	assert.True(t, registry.Remove(entity.ProductKey(2)))
	assert.False(t, registry.Remove(entity.ProductKey(2)))

	views := registry.All()
	require.Len(t, views, 2)
	assert.Equal(t, entity.ProductKey(1), views[0].Key())
	assert.Equal(t, entity.ProductKey(3), views[1].Key())
}

func TestRegistry_AllOfKind(t *testing.T) {
	registry := NewRegistry()
	registry.Add(productView(1, "Milk"))
	registry.Add(&entity.ShoppingListView{List: entity.ShoppingList{ID: 1}})
	registry.Add(&entity.OverviewView{})

	assert.Len(t, registry.AllOfKind(entity.KindProduct), 1)
	assert.Len(t, registry.AllOfKind(entity.KindShoppingList), 1)
	assert.Len(t, registry.AllOfKind(entity.KindOverview), 1)
	assert.Len(t, registry.All(), 3)
}
