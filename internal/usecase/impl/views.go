package impl

import (
	"pantrylink/internal/domain/entity"
	"pantrylink/internal/infra/memory"
)

// fallbackName substitutes for names whose referenced record is missing
// from the snapshot.
const fallbackName = "Other"

func buildProductView(product entity.Product, snapshot *memory.Snapshot) *entity.ProductView {
	view := &entity.ProductView{Product: product}
	resolveProductView(view, snapshot)

	return view
}

// resolveProductView recomputes a product view's denormalized fields from
// the snapshot. Resolution runs on every pass; nothing is memoized, so a
// renamed group or location is picked up on the next refresh.
func resolveProductView(view *entity.ProductView, snapshot *memory.Snapshot) {
	if product, ok := snapshot.ProductByID(view.Product.ID); ok {
		view.Product = product
	}

	view.GroupName = fallbackName
	for _, group := range snapshot.ProductGroups() {
		if group.ID == view.Product.ProductGroupID {
			view.GroupName = group.Name

			break
		}
	}

	view.LocationName = fallbackName
	for _, location := range snapshot.Locations() {
		if location.ID == view.Product.LocationID {
			view.LocationName = location.Name

			break
		}
	}

	view.UnitName = fallbackName
	for _, unit := range snapshot.QuantityUnits() {
		if unit.ID == view.Product.QuIDPurchase {
			view.UnitName = unit.Name

			break
		}
	}

	view.Amount = 0
	for _, item := range snapshot.ShoppingListItems() {
		if item.ProductID == view.Product.ID {
			view.Amount = item.Amount

			break
		}
	}
}

func buildShoppingListView(list entity.ShoppingList, snapshot *memory.Snapshot) *entity.ShoppingListView {
	view := &entity.ShoppingListView{List: list}
	resolveShoppingListView(view, snapshot)

	return view
}

// resolveShoppingListView recomputes a shopping list view's aggregates over
// the cached items. Items referencing unknown products still count toward
// the totals, just without a price contribution.
func resolveShoppingListView(view *entity.ShoppingListView, snapshot *memory.Snapshot) {
	for _, list := range snapshot.ShoppingLists() {
		if list.ID == view.List.ID {
			view.List = list

			break
		}
	}

	var (
		count       int
		totalAmount float64
		totalPrice  float64
	)
	products := snapshot.Products()
	for _, item := range snapshot.ShoppingListItems() {
		if item.ShoppingListID != view.List.ID {
			continue
		}
		count++
		totalAmount += item.Amount
		for _, product := range products {
			if product.ID == item.ProductID {
				totalPrice += product.Userfields.Price() * item.Amount

				break
			}
		}
	}

	view.ItemCount = count
	view.TotalAmount = totalAmount
	view.TotalPrice = totalPrice
}

// resolvedView returns a fresh copy of the view with its denormalized state
// recomputed. Registered views are shared across goroutines, so resolution
// never writes to the registered instance.
func resolvedView(view entity.View, snapshot *memory.Snapshot, registry *memory.Registry) entity.View {
	switch v := view.(type) {
	case *entity.ProductView:
		copied := *v
		resolveProductView(&copied, snapshot)

		return &copied
	case *entity.ShoppingListView:
		copied := *v
		resolveShoppingListView(&copied, snapshot)

		return &copied
	case *entity.OverviewView:
		copied := *v
		copied.TotalProducts = len(registry.AllOfKind(entity.KindProduct))
		copied.ServerVersion = snapshot.ServerVersion()

		return &copied
	default:
		return view
	}
}
