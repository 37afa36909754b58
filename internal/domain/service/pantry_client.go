package service

import (
	"context"
	"time"

	"pantrylink/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a remote lookup yields nothing. It is a
// negative result, not a transport failure.
var ErrNotFound = errors.New("object not found")

// SystemInfo describes the remote pantry server.
type SystemInfo struct {
	Version     string
	ReleaseDate string
}

// NewProduct carries the fields needed to create a product remotely.
type NewProduct struct {
	ID             int
	Name           string
	Barcode        string
	Description    string
	ProductGroupID int
	QuIDPurchase   int
	LocationID     int
	Picture        string
}

// ProductUpdate carries the optional fields of a partial product update.
// Nil fields are not sent.
type ProductUpdate struct {
	Name           *string
	Barcode        *string
	Description    *string
	ProductGroupID *int
	LocationID     *int
	Picture        *string
}

// PantryClient is the typed client for the pantry REST API.
type PantryClient interface {
	// Info returns the remote server description.
	Info(ctx context.Context) (SystemInfo, error)

	// LastChanged returns the global staleness token: the timestamp of the
	// most recent change to any remote data.
	LastChanged(ctx context.Context) (time.Time, error)

	Products(ctx context.Context) ([]entity.Product, error)
	Locations(ctx context.Context) ([]entity.Location, error)
	QuantityUnits(ctx context.Context) ([]entity.QuantityUnit, error)
	ProductGroups(ctx context.Context) ([]entity.ProductGroup, error)
	ShoppingLists(ctx context.Context) ([]entity.ShoppingList, error)
	ShoppingListItems(ctx context.Context) ([]entity.ShoppingListItem, error)

	// ProductByBarcode resolves a product through the remote barcode index.
	// Returns ErrNotFound when the barcode is unknown.
	ProductByBarcode(ctx context.Context, barcode string) (entity.Product, error)

	CreateProduct(ctx context.Context, product NewProduct) error
	UpdateProduct(ctx context.Context, id int, update ProductUpdate) error
	DeleteProduct(ctx context.Context, id int) error

	CreateLocation(ctx context.Context, id int, name string) error
	CreateQuantityUnit(ctx context.Context, id int, name string) error
	CreateProductGroup(ctx context.Context, id int, name string) error
	CreateShoppingList(ctx context.Context, id int, name string) error

	AddToShoppingList(ctx context.Context, productID, listID int, amount float64) error
	RemoveFromShoppingList(ctx context.Context, productID, listID int, amount float64) error
	ClearShoppingList(ctx context.Context, listID int) error
	CompleteShoppingListItem(ctx context.Context, itemID int, done bool) error

	// Userfields reads the free-form metadata bag of one product.
	Userfields(ctx context.Context, productID int) (entity.Userfields, error)
	// SetUserfields writes the given keys; callers that need the change to
	// be visible immediately must force-refresh afterwards.
	SetUserfields(ctx context.Context, productID int, fields entity.Userfields) error
}
