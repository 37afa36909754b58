package service

import (
	"context"

	"github.com/pkg/errors"
)

// ErrCartUnsupported is returned by store vendors that have no online cart.
var ErrCartUnsupported = errors.New("store does not support cart operations")

// ErrNotLoggedIn is returned by cart operations before a successful Login.
var ErrNotLoggedIn = errors.New("store session not established")

// StoreProduct is one catalog entry returned by a store barcode search.
type StoreProduct struct {
	Store     string
	Barcode   string
	Name      string
	Price     float64
	GroupID   int
	GroupName string
	Picture   string
	// Metadata is an opaque vendor blob carried through product userfields
	// so cart sync can reference vendor internal ids later.
	Metadata string
}

// CartItem is one line pushed to a store cart.
type CartItem struct {
	// Code is the vendor's internal product id, recovered from the product's
	// metadata userfield.
	Code     int
	Quantity float64
}

// StoreClient is a vendor-specific online grocery store client.
type StoreClient interface {
	Name() string

	// ProductByBarcode searches the vendor catalog. Returns ErrNotFound when
	// no catalog entry matches the barcode exactly.
	ProductByBarcode(ctx context.Context, barcode string) (StoreProduct, error)

	// Login establishes a session for cart operations. Vendors without cart
	// support return ErrCartUnsupported.
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error

	FillCart(ctx context.Context, items []CartItem) error
	EmptyCart(ctx context.Context) error
}
