package usecase

import "context"

// FillCartInput selects which shopping list is pushed to the store cart.
type FillCartInput struct {
	ShoppingListID int `json:"shopping_list" validate:"omitempty,min=1"`
}

// CartUsecase syncs shopping lists to the configured store's online cart.
// Vendors without cart support report service.ErrCartUnsupported.
type CartUsecase interface {
	// FillCart logs in and pushes every resolvable shopping list item to the
	// store cart.
	FillCart(ctx context.Context, input *FillCartInput) error

	// EmptyCart logs in and empties the store cart.
	EmptyCart(ctx context.Context) error
}
