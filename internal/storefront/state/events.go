package state

import "storefront/internal/domain/entity"

type EventKind string

const (
	EventCatalogLoaded  EventKind = "catalog_loaded"
	EventCatalogUpdated EventKind = "catalog_updated"
	EventCartChanged    EventKind = "cart_changed"
	EventCartRestored   EventKind = "cart_restored"
)

// CartItem is a cart line joined with its product. Product is nil when the
// line's product is not in the current catalog; such lines count toward
// ItemCount but not Total.
type CartItem struct {
	ProductID int64
	Quantity  int
	Product   *entity.Product
	Subtotal  float64
}

// Snapshot is a copy of the manager's state. Listeners may keep it; later
// mutations never change it.
type Snapshot struct {
	Products  []entity.Product
	Cart      []CartItem
	Total     float64
	ItemCount int
}

type Event struct {
	Kind EventKind
	// Version increases by one with every event a manager emits.
	Version  uint64
	Snapshot Snapshot
}

// Listener receives events in the order the mutations happened. It must
// not mutate the manager synchronously.
type Listener func(Event)
