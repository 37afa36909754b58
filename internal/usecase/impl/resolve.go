package impl

import (
	"context"

	"pantrylink/internal/domain/entity"
	"pantrylink/internal/domain/service"
	"pantrylink/internal/errors"
	"pantrylink/internal/infra/memory"
)

// resolveProduct finds the product view behind an entity reference. The
// reference may be a registry key, a barcode of a registered product, or a
// barcode only the remote server knows. Returns ok=false when nothing
// matches; a non-nil error means the remote lookup failed in transit, not
// that the reference is unknown.
func resolveProduct(ctx context.Context, registry *memory.Registry, pantry service.PantryClient, ref string) (*entity.ProductView, bool, error) {
	if view, ok := registry.Get(ref); ok {
		product, ok := view.(*entity.ProductView)

		return product, ok, nil
	}

	if view, ok := registry.GetByBarcode(ref); ok {
		product, ok := view.(*entity.ProductView)

		return product, ok, nil
	}

	product, err := pantry.ProductByBarcode(ctx, ref)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return nil, false, nil
		}

		return nil, false, errors.Wrapf(err, "failed to resolve barcode %s", ref)
	}
	if view, ok := registry.Get(entity.ProductKey(product.ID)); ok {
		productView, ok := view.(*entity.ProductView)

		return productView, ok, nil
	}

	return nil, false, nil
}
