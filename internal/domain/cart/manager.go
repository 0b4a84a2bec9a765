// internal/domain/cart/manager.go
package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/product"
)

// Status is the explicit load state of a cart manager.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusFailed  Status = "failed"
)

// Notifier receives fire-and-forget user-facing messages. It is never
// polled or awaited; implementations must not block.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// User-facing notification messages.
const (
	MsgItemAdded   = "Item added to cart"
	MsgItemRemoved = "Item removed from cart"
	MsgCartError   = "Something went wrong, please try again"
)

// Manager exposes the current cart items, a running total and mutation
// operations while hiding whether the cart is anonymous or authenticated.
// Every mutation is followed by an unconditional full reload from the
// store, so visible state always reflects the store's latest view.
//
// Store failures are logged and surfaced as a generic notification; the
// manager stays interactive and keeps its last loaded items.
type Manager struct {
	store    Store
	notifier Notifier
	log      *logrus.Logger

	status  Status
	failure string
	items   []Item
	cartID  uuid.UUID
}

// NewManager creates a manager over the given store. Status starts Idle;
// call Load before reading items.
func NewManager(store Store, notifier Notifier, log *logrus.Logger) *Manager {
	return &Manager{
		store:    store,
		notifier: notifier,
		log:      log,
		status:   StatusIdle,
		items:    []Item{},
	}
}

// Status returns the current load state
func (m *Manager) Status() Status {
	return m.status
}

// FailureReason returns the reason when Status is Failed, otherwise ""
func (m *Manager) FailureReason() string {
	return m.failure
}

// Items returns the current cart lines
func (m *Manager) Items() []Item {
	return m.items
}

// CartID returns the server cart id, uuid.Nil in anonymous mode
func (m *Manager) CartID() uuid.UUID {
	return m.cartID
}

// Total is derived, never cached: the sum of price x quantity over the
// current items, recomputed on every read.
func (m *Manager) Total() float64 {
	var total float64
	for _, item := range m.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// Load fetches the cart from the store. The manager always leaves the
// loading state on completion, landing on Loaded or Failed.
func (m *Manager) Load(ctx context.Context) {
	m.status = StatusLoading
	m.failure = ""

	items, cartID, err := m.store.Load(ctx)
	if err != nil {
		m.log.WithError(err).Error("Failed to load cart")
		m.status = StatusFailed
		m.failure = err.Error()
		return
	}

	m.items = items
	m.cartID = cartID
	m.status = StatusLoaded
}

// AddItem adds one unit of the product. When a line for the same product id
// already exists this is a quantity increment of that line, not a new line.
func (m *Manager) AddItem(ctx context.Context, snap product.Snapshot) {
	if err := m.addItem(ctx, snap); err != nil {
		m.log.WithError(err).WithField("product_id", snap.ID).Error("Failed to add item to cart")
		m.notifier.Error(MsgCartError)
		return
	}
	m.notifier.Success(MsgItemAdded)
}

func (m *Manager) addItem(ctx context.Context, snap product.Snapshot) error {
	if existing := m.findByProduct(snap.ID); existing != nil {
		return m.updateQuantity(ctx, existing.ID, existing.Quantity+1)
	}

	if err := m.store.Insert(ctx, snap); err != nil {
		return err
	}
	return m.reload(ctx)
}

// UpdateQuantity sets a line's quantity. Anything below one removes the
// line instead of keeping it at zero.
func (m *Manager) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) {
	if quantity < 1 {
		m.RemoveItem(ctx, itemID)
		return
	}

	if err := m.updateQuantity(ctx, itemID, quantity); err != nil {
		m.log.WithError(err).WithField("item_id", itemID).Error("Failed to update cart quantity")
		m.notifier.Error(MsgCartError)
	}
}

func (m *Manager) updateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	if err := m.store.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return err
	}
	return m.reload(ctx)
}

// RemoveItem deletes a line
func (m *Manager) RemoveItem(ctx context.Context, itemID uuid.UUID) {
	if err := m.removeItem(ctx, itemID); err != nil {
		m.log.WithError(err).WithField("item_id", itemID).Error("Failed to remove cart item")
		m.notifier.Error(MsgCartError)
		return
	}
	m.notifier.Success(MsgItemRemoved)
}

func (m *Manager) removeItem(ctx context.Context, itemID uuid.UUID) error {
	if err := m.store.Remove(ctx, itemID); err != nil {
		return err
	}
	return m.reload(ctx)
}

// Clear deletes every line in the cart
func (m *Manager) Clear(ctx context.Context) {
	if err := m.clear(ctx); err != nil {
		m.log.WithError(err).Error("Failed to clear cart")
		m.notifier.Error(MsgCartError)
	}
}

func (m *Manager) clear(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	return m.reload(ctx)
}

// reload refreshes items from the store after a mutation. Unlike Load it
// propagates the error so the mutation is reported as failed, but it keeps
// the manager on its previous state rather than marking it Failed.
func (m *Manager) reload(ctx context.Context) error {
	items, cartID, err := m.store.Load(ctx)
	if err != nil {
		return err
	}
	m.items = items
	m.cartID = cartID
	return nil
}

func (m *Manager) findByProduct(productID uuid.UUID) *Item {
	for i := range m.items {
		if m.items[i].Product.ID == productID {
			return &m.items[i]
		}
	}
	return nil
}
