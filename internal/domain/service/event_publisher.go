package service

import "context"

// Domain event names emitted to the host platform bus.
const (
	EventAddedToList      = "added_to_list"
	EventSubtractFromList = "subtract_from_list"
	EventProductAdded     = "product_added"
	EventProductRemoved   = "product_removed"
	EventProductUpdated   = "product_updated"
	EventListCleared      = "list_cleared"
	EventItemCompleted    = "item_completed"
	EventSyncDone         = "sync_done"
	EventError            = "error"
)

// Event is one domain event published to the host platform bus.
type Event struct {
	ID       string `json:"id"`
	Name     string `json:"event"`
	EntityID string `json:"entity_id,omitempty"`
	Message  string `json:"message,omitempty"`
}

// EventPublisher defines the interface for publishing domain events to the
// host platform bus.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
