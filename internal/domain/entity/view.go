package entity

import "strconv"

// IntegrationVersion is reported on the overview entity.
const IntegrationVersion = "0.1.0"

// Kind is the concrete variant tag of a view entity.
type Kind string

const (
	KindProduct      Kind = "product"
	KindShoppingList Kind = "shopping_list"
	KindOverview     Kind = "overview"
)

// View is a denormalized, externally observable entity derived from cached
// domain objects. Views are keyed by a stable identifier independent of the
// remote record ids.
type View interface {
	Key() string
	Kind() Kind
	Name() string
	State() any
	Attributes() map[string]any
}

// ProductKey derives the registry key for a product id.
func ProductKey(id int) string {
	return "product:" + strconv.Itoa(id)
}

// ShoppingListKey derives the registry key for a shopping list id.
func ShoppingListKey(id int) string {
	return "shopping_list:" + strconv.Itoa(id)
}

// OverviewKey is the registry key of the summary entity.
const OverviewKey = "overview"

// ProductView presents one product enriched with names resolved from the
// other cached categories. State is the amount currently on the shopping
// list.
type ProductView struct {
	Product Product

	Amount       float64
	GroupName    string
	LocationName string
	UnitName     string
}

func (v *ProductView) Key() string  { return ProductKey(v.Product.ID) }
func (v *ProductView) Kind() Kind   { return KindProduct }
func (v *ProductView) Name() string { return v.Product.Name }
func (v *ProductView) State() any   { return v.Amount }

// FirstBarcode returns the underlying product's primary barcode.
func (v *ProductView) FirstBarcode() string { return v.Product.FirstBarcode() }

func (v *ProductView) Attributes() map[string]any {
	attrs := map[string]any{
		"id":                 v.Product.ID,
		"name":               v.Product.Name,
		"description":        v.Product.Description,
		"barcodes":           v.Product.Barcodes,
		"picture_file_name":  v.Product.PictureFileName,
		"location_id":        v.Product.LocationID,
		"product_group_id":   v.Product.ProductGroupID,
		"qu_id_purchase":     v.Product.QuIDPurchase,
		"product_group_name": v.GroupName,
		"location_name":      v.LocationName,
		"qu_purchase_name":   v.UnitName,
	}
	// Flatten userfields into the attribute map; known keys get typed values.
	for key, value := range v.Product.Userfields {
		switch key {
		case UserfieldPrice:
			attrs[key] = v.Product.Userfields.Price()
		case UserfieldFavorite:
			attrs[key] = v.Product.Userfields.Favorite()
		default:
			attrs[key] = value
		}
	}

	return attrs
}

// ShoppingListView presents one shopping list with aggregates over its
// items. State is the number of items on the list.
type ShoppingListView struct {
	List ShoppingList

	ItemCount   int
	TotalAmount float64
	TotalPrice  float64
}

func (v *ShoppingListView) Key() string  { return ShoppingListKey(v.List.ID) }
func (v *ShoppingListView) Kind() Kind   { return KindShoppingList }
func (v *ShoppingListView) Name() string { return v.List.Name }
func (v *ShoppingListView) State() any   { return v.ItemCount }

func (v *ShoppingListView) Attributes() map[string]any {
	return map[string]any{
		"id":           v.List.ID,
		"description":  v.List.Description,
		"total_amount": v.TotalAmount,
		"total_price":  v.TotalPrice,
	}
}

// OverviewView is the top-level summary entity.
type OverviewView struct {
	TotalProducts int
	ServerVersion string
}

func (v *OverviewView) Key() string  { return OverviewKey }
func (v *OverviewView) Kind() Kind   { return KindOverview }
func (v *OverviewView) Name() string { return "Pantry" }
func (v *OverviewView) State() any   { return "connected" }

func (v *OverviewView) Attributes() map[string]any {
	return map[string]any{
		"total_products":      v.TotalProducts,
		"integration_version": IntegrationVersion,
		"server_version":      v.ServerVersion,
	}
}
