package entity

import "strconv"

// Known userfield keys read by the core logic. Unknown keys pass through
// opaquely.
const (
	UserfieldPrice    = "price"
	UserfieldStore    = "store"
	UserfieldFavorite = "favorite"
	UserfieldMetadata = "metadata"
)

// Userfields is the free-form per-product metadata bag kept on the pantry
// server outside the canonical product schema.
type Userfields map[string]string

// Price returns the stored price, or 0 when absent or unparsable.
func (u Userfields) Price() float64 {
	v, err := strconv.ParseFloat(u[UserfieldPrice], 64)
	if err != nil {
		return 0
	}

	return v
}

// Store returns the store the product was sourced from.
func (u Userfields) Store() string {
	return u[UserfieldStore]
}

// Favorite reports whether the product is flagged as a favorite.
func (u Userfields) Favorite() bool {
	switch u[UserfieldFavorite] {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// Metadata returns the opaque vendor-specific blob used by store clients.
func (u Userfields) Metadata() string {
	return u[UserfieldMetadata]
}

// Clone returns a copy of the bag.
func (u Userfields) Clone() Userfields {
	if u == nil {
		return nil
	}
	out := make(Userfields, len(u))
	for k, v := range u {
		out[k] = v
	}

	return out
}
