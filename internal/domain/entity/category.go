package entity

import "github.com/pkg/errors"

// Category identifies one of the six resource collections mirrored from the
// pantry server. Each category has its own staleness lifecycle.
type Category string

const (
	CategoryProducts          Category = "products"
	CategoryShoppingListItems Category = "shopping_list"
	CategoryShoppingLists     Category = "shopping_lists"
	CategoryLocations         Category = "locations"
	CategoryQuantityUnits     Category = "quantity_units"
	CategoryProductGroups     Category = "product_groups"
)

// AllCategories returns every category in a fixed order. Refresh passes walk
// this order so partial failures are deterministic.
func AllCategories() []Category {
	return []Category{
		CategoryProducts,
		CategoryShoppingListItems,
		CategoryShoppingLists,
		CategoryLocations,
		CategoryQuantityUnits,
		CategoryProductGroups,
	}
}

// ParseCategory converts the external name of a category to a Category.
func ParseCategory(name string) (Category, error) {
	switch Category(name) {
	case CategoryProducts, CategoryShoppingListItems, CategoryShoppingLists,
		CategoryLocations, CategoryQuantityUnits, CategoryProductGroups:
		return Category(name), nil
	default:
		return "", errors.Errorf("unknown category: %s", name)
	}
}
