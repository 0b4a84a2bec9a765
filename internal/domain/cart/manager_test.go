// internal/domain/cart/manager_test.go
package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/product"
)

// fakeStore is an in-memory Store for manager tests. Errors can be injected
// per operation to exercise the failure paths.
type fakeStore struct {
	items  []Item
	cartID uuid.UUID

	loadErr   error
	insertErr error
	updateErr error
	removeErr error
	clearErr  error

	loadCalls int
}

func (f *fakeStore) Load(ctx context.Context) ([]Item, uuid.UUID, error) {
	f.loadCalls++
	if f.loadErr != nil {
		return nil, uuid.Nil, f.loadErr
	}
	out := make([]Item, len(f.items))
	copy(out, f.items)
	return out, f.cartID, nil
}

func (f *fakeStore) Insert(ctx context.Context, snap product.Snapshot) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.items = append(f.items, Item{ID: uuid.New(), Product: snap, Quantity: 1})
	return nil
}

func (f *fakeStore) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items[i].Quantity = quantity
			return nil
		}
	}
	return errors.New("item not found in cart")
}

func (f *fakeStore) Remove(ctx context.Context, itemID uuid.UUID) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	kept := f.items[:0]
	for _, item := range f.items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeStore) Clear(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.items = nil
	return nil
}

// recordingNotifier captures notifications in order.
type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) Error(message string)   { n.errors = append(n.errors, message) }

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func snapshot(price float64) product.Snapshot {
	return product.Snapshot{
		ID:       uuid.New(),
		Title:    "Test Product",
		Price:    price,
		ImageURL: "https://example.com/p.jpg",
	}
}

func newTestManager(store Store) (*Manager, *recordingNotifier) {
	notifier := &recordingNotifier{}
	return NewManager(store, notifier, testLogger()), notifier
}

func TestManagerStartsIdle(t *testing.T) {
	m, _ := newTestManager(&fakeStore{})
	if m.Status() != StatusIdle {
		t.Errorf("expected idle status, got %s", m.Status())
	}
	if len(m.Items()) != 0 {
		t.Errorf("expected no items before load, got %d", len(m.Items()))
	}
}

func TestManagerLoadSuccess(t *testing.T) {
	cartID := uuid.New()
	store := &fakeStore{
		cartID: cartID,
		items: []Item{
			{ID: uuid.New(), Product: snapshot(10), Quantity: 2},
		},
	}
	m, _ := newTestManager(store)

	m.Load(context.Background())

	if m.Status() != StatusLoaded {
		t.Fatalf("expected loaded status, got %s", m.Status())
	}
	if m.CartID() != cartID {
		t.Errorf("expected cart id %s, got %s", cartID, m.CartID())
	}
	if len(m.Items()) != 1 {
		t.Errorf("expected 1 item, got %d", len(m.Items()))
	}
}

func TestManagerLoadFailure(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("connection refused")}
	m, _ := newTestManager(store)

	m.Load(context.Background())

	if m.Status() != StatusFailed {
		t.Fatalf("expected failed status, got %s", m.Status())
	}
	if m.FailureReason() == "" {
		t.Error("expected a failure reason")
	}
}

func TestManagerLoadRecoversAfterFailure(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("connection refused")}
	m, _ := newTestManager(store)

	m.Load(context.Background())
	if m.Status() != StatusFailed {
		t.Fatalf("expected failed status, got %s", m.Status())
	}

	store.loadErr = nil
	m.Load(context.Background())
	if m.Status() != StatusLoaded {
		t.Fatalf("expected loaded status after retry, got %s", m.Status())
	}
	if m.FailureReason() != "" {
		t.Errorf("expected failure reason cleared, got %q", m.FailureReason())
	}
}

func TestManagerAddItemNewLine(t *testing.T) {
	store := &fakeStore{}
	m, notifier := newTestManager(store)
	m.Load(context.Background())

	m.AddItem(context.Background(), snapshot(25))

	if len(m.Items()) != 1 {
		t.Fatalf("expected 1 item, got %d", len(m.Items()))
	}
	if m.Items()[0].Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", m.Items()[0].Quantity)
	}
	if len(notifier.successes) != 1 || notifier.successes[0] != MsgItemAdded {
		t.Errorf("expected added notification, got %v", notifier.successes)
	}
}

func TestManagerAddItemMergesByProductID(t *testing.T) {
	store := &fakeStore{}
	m, _ := newTestManager(store)
	m.Load(context.Background())

	snap := snapshot(25)
	m.AddItem(context.Background(), snap)
	m.AddItem(context.Background(), snap)

	if len(m.Items()) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(m.Items()))
	}
	if m.Items()[0].Quantity != 2 {
		t.Errorf("expected quantity 2 after merge, got %d", m.Items()[0].Quantity)
	}
}

func TestManagerAddItemDistinctProducts(t *testing.T) {
	store := &fakeStore{}
	m, _ := newTestManager(store)
	m.Load(context.Background())

	m.AddItem(context.Background(), snapshot(10))
	m.AddItem(context.Background(), snapshot(20))

	if len(m.Items()) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(m.Items()))
	}
}

func TestManagerAddItemFailureKeepsItems(t *testing.T) {
	store := &fakeStore{}
	m, notifier := newTestManager(store)
	m.Load(context.Background())
	m.AddItem(context.Background(), snapshot(10))

	store.insertErr = errors.New("write failed")
	m.AddItem(context.Background(), snapshot(20))

	if len(m.Items()) != 1 {
		t.Errorf("expected items unchanged after failure, got %d", len(m.Items()))
	}
	if m.Status() != StatusLoaded {
		t.Errorf("expected manager to stay loaded, got %s", m.Status())
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != MsgCartError {
		t.Errorf("expected generic error notification, got %v", notifier.errors)
	}
}

func TestManagerUpdateQuantity(t *testing.T) {
	store := &fakeStore{}
	m, _ := newTestManager(store)
	m.Load(context.Background())
	m.AddItem(context.Background(), snapshot(10))

	m.UpdateQuantity(context.Background(), m.Items()[0].ID, 5)

	if m.Items()[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", m.Items()[0].Quantity)
	}
}

func TestManagerUpdateQuantityBelowOneRemoves(t *testing.T) {
	for _, quantity := range []int{0, -1, -7} {
		store := &fakeStore{}
		m, notifier := newTestManager(store)
		m.Load(context.Background())
		m.AddItem(context.Background(), snapshot(10))

		m.UpdateQuantity(context.Background(), m.Items()[0].ID, quantity)

		if len(m.Items()) != 0 {
			t.Errorf("quantity %d: expected line removed, got %d items", quantity, len(m.Items()))
		}
		last := notifier.successes[len(notifier.successes)-1]
		if last != MsgItemRemoved {
			t.Errorf("quantity %d: expected removed notification, got %q", quantity, last)
		}
	}
}

func TestManagerRemoveItem(t *testing.T) {
	store := &fakeStore{}
	m, notifier := newTestManager(store)
	m.Load(context.Background())
	m.AddItem(context.Background(), snapshot(10))
	m.AddItem(context.Background(), snapshot(20))

	m.RemoveItem(context.Background(), m.Items()[0].ID)

	if len(m.Items()) != 1 {
		t.Fatalf("expected 1 item left, got %d", len(m.Items()))
	}
	last := notifier.successes[len(notifier.successes)-1]
	if last != MsgItemRemoved {
		t.Errorf("expected removed notification, got %q", last)
	}
}

func TestManagerClear(t *testing.T) {
	store := &fakeStore{}
	m, _ := newTestManager(store)
	m.Load(context.Background())
	m.AddItem(context.Background(), snapshot(10))
	m.AddItem(context.Background(), snapshot(20))

	m.Clear(context.Background())

	if len(m.Items()) != 0 {
		t.Errorf("expected empty cart after clear, got %d items", len(m.Items()))
	}
	if m.Total() != 0 {
		t.Errorf("expected zero total after clear, got %f", m.Total())
	}
}

func TestManagerTotalRecomputed(t *testing.T) {
	store := &fakeStore{}
	m, _ := newTestManager(store)
	m.Load(context.Background())

	if m.Total() != 0 {
		t.Errorf("expected zero total for empty cart, got %f", m.Total())
	}

	snap := snapshot(19.99)
	m.AddItem(context.Background(), snap)
	m.AddItem(context.Background(), snap)
	m.AddItem(context.Background(), snapshot(5.50))

	want := 19.99*2 + 5.50
	if m.Total() != want {
		t.Errorf("expected total %f, got %f", want, m.Total())
	}

	m.UpdateQuantity(context.Background(), m.Items()[0].ID, 1)
	want = 19.99 + 5.50
	if m.Total() != want {
		t.Errorf("expected total %f after update, got %f", want, m.Total())
	}
}

func TestManagerMutationsReloadFromStore(t *testing.T) {
	store := &fakeStore{}
	m, _ := newTestManager(store)
	m.Load(context.Background())

	before := store.loadCalls
	m.AddItem(context.Background(), snapshot(10))
	if store.loadCalls != before+1 {
		t.Errorf("expected one reload after add, got %d", store.loadCalls-before)
	}

	before = store.loadCalls
	m.UpdateQuantity(context.Background(), m.Items()[0].ID, 3)
	if store.loadCalls != before+1 {
		t.Errorf("expected one reload after update, got %d", store.loadCalls-before)
	}

	before = store.loadCalls
	m.Clear(context.Background())
	if store.loadCalls != before+1 {
		t.Errorf("expected one reload after clear, got %d", store.loadCalls-before)
	}
}
