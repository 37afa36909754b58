package usecase

import "context"

// AddProductInput describes a product addition by store barcode.
type AddProductInput struct {
	Barcode        string `json:"barcode" validate:"required"`
	ProductGroupID int    `json:"product_group_id" validate:"required,min=1"`
	LocationID     int    `json:"product_location_id" validate:"required,min=1"`
	Description    string `json:"product_description"`
}

// EntityRefInput identifies one registered entity by key or barcode.
type EntityRefInput struct {
	EntityRef string `json:"entity_id" validate:"required"`
}

// ProductUsecase implements the product-level commands.
type ProductUsecase interface {
	// AddProduct updates the existing product matching the barcode, or looks
	// the barcode up at the configured store and creates it remotely.
	AddProduct(ctx context.Context, input *AddProductInput) error

	// RemoveProduct deletes the resolved product remotely, then locally.
	RemoveProduct(ctx context.Context, input *EntityRefInput) error

	// AddFavorite flags the resolved product as a favorite.
	AddFavorite(ctx context.Context, input *EntityRefInput) error

	// RemoveFavorite clears the favorite flag.
	RemoveFavorite(ctx context.Context, input *EntityRefInput) error
}
