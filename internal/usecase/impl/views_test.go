package impl

import (
	"testing"

	"pantrylink/internal/domain/entity"
	"pantrylink/internal/infra/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProductView_ResolvesReferencedNames(t *testing.T) {
	snapshot := memory.NewSnapshot()
	snapshot.ReplaceProducts([]entity.Product{{
		ID: 1, Name: "Milk", ProductGroupID: 10, LocationID: 20, QuIDPurchase: 30,
	}})
	snapshot.ReplaceProductGroups([]entity.ProductGroup{{ID: 10, Name: "Dairy"}})
	snapshot.ReplaceLocations([]entity.Location{{ID: 20, Name: "Fridge"}})
	snapshot.ReplaceQuantityUnits([]entity.QuantityUnit{{ID: 30, Name: "Bottle"}})
	snapshot.ReplaceShoppingListItems([]entity.ShoppingListItem{{ID: 5, ProductID: 1, ShoppingListID: 1, Amount: 3}})

	view := buildProductView(snapshot.Products()[0], snapshot)

	assert.Equal(t, "Dairy", view.GroupName)
	assert.Equal(t, "Fridge", view.LocationName)
	assert.Equal(t, "Bottle", view.UnitName)
	assert.Equal(t, 3.0, view.Amount)

	attrs := view.Attributes()
	assert.Equal(t, "Dairy", attrs["product_group_name"])
	assert.Equal(t, "Fridge", attrs["location_name"])
	assert.Equal(t, "Bottle", attrs["qu_purchase_name"])
}

func TestBuildProductView_MissingReferencesFallBackToOther(t *testing.T) {
	snapshot := memory.NewSnapshot()
	snapshot.ReplaceProducts([]entity.Product{{
		ID: 1, Name: "Mystery", ProductGroupID: 999, LocationID: 999, QuIDPurchase: 999,
	}})

	view := buildProductView(snapshot.Products()[0], snapshot)

	assert.Equal(t, fallbackName, view.GroupName)
	assert.Equal(t, fallbackName, view.LocationName)
	assert.Equal(t, fallbackName, view.UnitName)
	assert.Equal(t, 0.0, view.Amount)
}

func TestResolveProductView_PicksUpRenames(t *testing.T) {
	snapshot := memory.NewSnapshot()
	snapshot.ReplaceProducts([]entity.Product{{ID: 1, Name: "Milk", ProductGroupID: 10}})
	snapshot.ReplaceProductGroups([]entity.ProductGroup{{ID: 10, Name: "Dairy"}})

	view := buildProductView(snapshot.Products()[0], snapshot)
	require.Equal(t, "Dairy", view.GroupName)

	// A later refresh renames the group; nothing is memoized.
	snapshot.ReplaceProductGroups([]entity.ProductGroup{{ID: 10, Name: "Dairy & Eggs"}})
	resolveProductView(view, snapshot)

	assert.Equal(t, "Dairy & Eggs", view.GroupName)
}

func TestResolveShoppingListView_Aggregates(t *testing.T) {
	snapshot := memory.NewSnapshot()
	snapshot.ReplaceProducts([]entity.Product{
		{ID: 1, Userfields: entity.Userfields{entity.UserfieldPrice: "2.5"}},
		{ID: 2, Userfields: entity.Userfields{entity.UserfieldPrice: "10"}},
		{ID: 3},
	})
	snapshot.ReplaceShoppingLists([]entity.ShoppingList{{ID: 1, Name: "Groceries"}})
	snapshot.ReplaceShoppingListItems([]entity.ShoppingListItem{
		{ID: 1, ProductID: 1, ShoppingListID: 1, Amount: 2},
		{ID: 2, ProductID: 2, ShoppingListID: 1, Amount: 1},
		{ID: 3, ProductID: 3, ShoppingListID: 1, Amount: 4},
		{ID: 4, ProductID: 1, ShoppingListID: 2, Amount: 9},
	})

	view := buildShoppingListView(snapshot.ShoppingLists()[0], snapshot)

	assert.Equal(t, 3, view.ItemCount)
	assert.Equal(t, 7.0, view.TotalAmount)
	// 2*2.5 + 1*10; the unpriced product contributes nothing.
	assert.InDelta(t, 15.0, view.TotalPrice, 0.001)
}
