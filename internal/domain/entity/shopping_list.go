package entity

import "time"

// ShoppingList is a named shopping list on the pantry server.
type ShoppingList struct {
	ID          int
	Name        string
	Description string
	CreatedAt   time.Time
}

// ShoppingListItem is one line of a shopping list.
type ShoppingListItem struct {
	ID             int
	ProductID      int
	ShoppingListID int
	Note           string
	Amount         float64
	Done           bool
	CreatedAt      time.Time
}
