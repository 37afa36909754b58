package usecase

import "context"

// ListInput identifies a product and a shopping list mutation. EntityRef
// accepts a registry key or a raw barcode. Zero values pick up the
// configured defaults (amount 1, primary list).
type ListInput struct {
	EntityRef      string  `json:"entity_id" validate:"required"`
	ShoppingListID int     `json:"shopping_list" validate:"omitempty,min=1"`
	Amount         float64 `json:"amount" validate:"omitempty,gt=0"`
}

// ClearListInput selects the shopping list to clear. Zero picks up the
// configured primary list.
type ClearListInput struct {
	ShoppingListID int `json:"shopping_list" validate:"omitempty,min=1"`
}

// CompleteItemInput toggles the done flag of one shopping list item. A nil
// Done means complete.
type CompleteItemInput struct {
	ItemID int   `json:"item_id" validate:"required,min=1"`
	Done   *bool `json:"done"`
}

// ListUsecase mutates shopping lists on the pantry server.
type ListUsecase interface {
	// AddToList puts the resolved product on a shopping list.
	AddToList(ctx context.Context, input *ListInput) error

	// SubtractFromList removes an amount of the resolved product from a
	// shopping list.
	SubtractFromList(ctx context.Context, input *ListInput) error

	// ClearList removes every item from a shopping list.
	ClearList(ctx context.Context, input *ClearListInput) error

	// CompleteItem toggles the done flag of one shopping list item.
	CompleteItem(ctx context.Context, input *CompleteItemInput) error
}
