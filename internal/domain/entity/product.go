package entity

import "time"

// Product is a typed view over a raw pantry product record.
type Product struct {
	ID                      int
	Name                    string
	Description             string
	LocationID              int
	ProductGroupID          int
	QuIDStock               int
	QuIDPurchase            int
	QuFactorPurchaseToStock float64
	PictureFileName         string
	AllowPartialUnits       bool
	MinStockAmount          int
	DefaultBestBeforeDays   int
	// Barcodes is the comma-separated raw barcode field split into values.
	Barcodes  []string
	CreatedAt time.Time

	// Userfields is fetched on demand; empty unless the refresh that
	// produced this product included userfields.
	Userfields Userfields
}

// FirstBarcode returns the product's primary barcode, or "" when it has none.
func (p Product) FirstBarcode() string {
	if len(p.Barcodes) == 0 {
		return ""
	}

	return p.Barcodes[0]
}

// Location is a storage location on the pantry server.
type Location struct {
	ID          int
	Name        string
	Description string
	IsFreezer   bool
	CreatedAt   time.Time
}

// QuantityUnit is a unit of measurement on the pantry server.
type QuantityUnit struct {
	ID          int
	Name        string
	NamePlural  string
	Description string
	CreatedAt   time.Time
}

// ProductGroup is a product grouping on the pantry server.
type ProductGroup struct {
	ID          int
	Name        string
	Description string
	CreatedAt   time.Time
}
