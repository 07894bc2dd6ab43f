package cart

import "storefront/models"

type EventKind string

const (
	EventItemAdded       EventKind = "item_added"
	EventItemRemoved     EventKind = "item_removed"
	EventQuantityUpdated EventKind = "quantity_updated"
	EventCleared         EventKind = "cleared"
	EventOpened          EventKind = "opened"
	EventClosed          EventKind = "closed"
)

// Event describes a committed change. Summary is the state right after it.
type Event struct {
	Kind      EventKind          `json:"kind"`
	ProductID string             `json:"product_id,omitempty"`
	Size      string             `json:"size,omitempty"`
	Quantity  int                `json:"quantity,omitempty"`
	Summary   models.CartSummary `json:"cart"`
}

type Listener func(Event)
