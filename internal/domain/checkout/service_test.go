// internal/domain/checkout/service_test.go
package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
)

type fakeOrderWriter struct {
	orders []order.Order
	items  []order.OrderItem

	orderErr error
	itemsErr error
}

func (f *fakeOrderWriter) CreateOrder(ctx context.Context, o *order.Order) error {
	if f.orderErr != nil {
		return f.orderErr
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	f.orders = append(f.orders, *o)
	return nil
}

func (f *fakeOrderWriter) CreateItems(ctx context.Context, items []order.OrderItem) error {
	if f.itemsErr != nil {
		return f.itemsErr
	}
	f.items = append(f.items, items...)
	return nil
}

type fakeCartClearer struct {
	cleared  []string
	clearErr error
}

func (f *fakeCartClearer) ClearFor(ctx context.Context, userEmail, sessionID string) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = append(f.cleared, userEmail)
	return nil
}

type fakeStash struct {
	stashed map[string]*Pending
	putErr  error
}

func newFakeStash() *fakeStash {
	return &fakeStash{stashed: make(map[string]*Pending)}
}

func (f *fakeStash) Put(ctx context.Context, sessionID string, pending *Pending) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.stashed[sessionID] = pending
	return nil
}

func (f *fakeStash) Pop(ctx context.Context, sessionID string) (*Pending, error) {
	pending, ok := f.stashed[sessionID]
	if !ok {
		return nil, nil
	}
	delete(f.stashed, sessionID)
	return pending, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func testForm() Form {
	return Form{
		FullName: "Jane Buyer",
		Phone:    "+90 555 000 0000",
		Address:  "1 Main St",
		City:     "Istanbul",
	}
}

func testItems() []cart.Item {
	return []cart.Item{
		{
			ID:       uuid.New(),
			Product:  product.Snapshot{ID: uuid.New(), Title: "Widget", Price: 19.99},
			Quantity: 2,
		},
		{
			ID:       uuid.New(),
			Product:  product.Snapshot{ID: uuid.New(), Title: "Gadget", Price: 5.50},
			Quantity: 1,
		},
	}
}

func TestSubmitAnonymousStashesAndSignalsAuth(t *testing.T) {
	orders := &fakeOrderWriter{}
	carts := &fakeCartClearer{}
	stash := newFakeStash()
	svc := NewService(orders, carts, stash, testLogger())

	form := testForm()
	items := testItems()
	o, err := svc.Submit(context.Background(), Identity{SessionID: "sess-1"}, &Request{
		Form:     form,
		Items:    items,
		FromCart: true,
	})

	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if o != nil {
		t.Error("expected no order for anonymous submission")
	}
	if len(orders.orders) != 0 {
		t.Errorf("expected no order rows, got %d", len(orders.orders))
	}

	pending := stash.stashed["sess-1"]
	if pending == nil {
		t.Fatal("expected pending purchase stashed under session")
	}
	if pending.Form.FullName != form.FullName {
		t.Errorf("stashed form mismatch: %q", pending.Form.FullName)
	}
	if len(pending.Items) != len(items) {
		t.Fatalf("expected %d stashed items, got %d", len(items), len(pending.Items))
	}
	if pending.Items[0].Product.ID != items[0].Product.ID {
		t.Error("stashed items do not match the submitted purchase")
	}
	wantTotal := 19.99*2 + 5.50
	if pending.Total != wantTotal {
		t.Errorf("expected stashed total %f, got %f", wantTotal, pending.Total)
	}
	if !pending.FromCart {
		t.Error("expected cart-sourced flag preserved in the stash")
	}
	if len(carts.cleared) != 0 {
		t.Error("anonymous submission must not touch the cart")
	}
}

func TestSubmitAnonymousBuyNowStashesItem(t *testing.T) {
	stash := newFakeStash()
	svc := NewService(&fakeOrderWriter{}, &fakeCartClearer{}, stash, testLogger())

	items := testItems()[:1]
	_, err := svc.Submit(context.Background(), Identity{SessionID: "sess-2"}, &Request{
		Form:     testForm(),
		Items:    items,
		FromCart: false,
	})
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}

	pending := stash.stashed["sess-2"]
	if pending == nil {
		t.Fatal("expected pending purchase stashed under session")
	}
	if len(pending.Items) != 1 || pending.Items[0].Product.Title != "Widget" {
		t.Fatalf("buy-now item lost in the stash: %+v", pending.Items)
	}
	if pending.FromCart {
		t.Error("buy-now purchase must not be flagged as cart-sourced")
	}
	if pending.Total != 19.99*2 {
		t.Errorf("expected stashed total %f, got %f", 19.99*2, pending.Total)
	}
}

func TestSubmitAuthenticatedCreatesOrderAndItems(t *testing.T) {
	orders := &fakeOrderWriter{}
	carts := &fakeCartClearer{}
	svc := NewService(orders, carts, newFakeStash(), testLogger())

	items := testItems()
	o, err := svc.Submit(context.Background(), Identity{Email: "jane@example.com", SessionID: "sess-1"}, &Request{
		Form:     testForm(),
		Items:    items,
		FromCart: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(orders.orders) != 1 {
		t.Fatalf("expected 1 order row, got %d", len(orders.orders))
	}
	stored := orders.orders[0]
	if stored.UserEmail != "jane@example.com" {
		t.Errorf("wrong user email: %q", stored.UserEmail)
	}
	if stored.Status != order.StatusPending {
		t.Errorf("expected pending status, got %q", stored.Status)
	}

	wantTotal := 19.99*2 + 5.50
	if stored.TotalAmount != wantTotal {
		t.Errorf("expected total %f, got %f", wantTotal, stored.TotalAmount)
	}

	if len(orders.items) != 2 {
		t.Fatalf("expected 2 item rows, got %d", len(orders.items))
	}
	for i, row := range orders.items {
		if row.OrderID != o.ID {
			t.Errorf("item %d not linked to order", i)
		}
		if row.Price != items[i].Product.Price {
			t.Errorf("item %d price mismatch: %f", i, row.Price)
		}
		if row.Quantity != items[i].Quantity {
			t.Errorf("item %d quantity mismatch: %d", i, row.Quantity)
		}
	}

	if len(carts.cleared) != 1 {
		t.Errorf("expected cart cleared once, got %d", len(carts.cleared))
	}
}

func TestSubmitCarriesCompanyFields(t *testing.T) {
	orders := &fakeOrderWriter{}
	svc := NewService(orders, &fakeCartClearer{}, newFakeStash(), testLogger())

	company := "Acme Ltd"
	taxOffice := "Kadikoy"
	taxNumber := "1234567890"
	form := testForm()
	form.CompanyName = &company
	form.TaxOffice = &taxOffice
	form.TaxNumber = &taxNumber

	_, err := svc.Submit(context.Background(), Identity{Email: "jane@example.com"}, &Request{
		Form:     form,
		Items:    testItems(),
		FromCart: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := orders.orders[0]
	if stored.CompanyName == nil || *stored.CompanyName != company {
		t.Error("company name not carried onto the order")
	}
	if stored.TaxOffice == nil || *stored.TaxOffice != taxOffice {
		t.Error("tax office not carried onto the order")
	}
	if stored.TaxNumber == nil || *stored.TaxNumber != taxNumber {
		t.Error("tax number not carried onto the order")
	}
}

func TestSubmitEmptyCartRejected(t *testing.T) {
	orders := &fakeOrderWriter{}
	svc := NewService(orders, &fakeCartClearer{}, newFakeStash(), testLogger())

	_, err := svc.Submit(context.Background(), Identity{Email: "jane@example.com"}, &Request{
		Form:     testForm(),
		Items:    nil,
		FromCart: true,
	})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if len(orders.orders) != 0 {
		t.Error("expected no order rows for empty submission")
	}
}

func TestSubmitOrderInsertFailure(t *testing.T) {
	orders := &fakeOrderWriter{orderErr: errors.New("insert failed")}
	carts := &fakeCartClearer{}
	svc := NewService(orders, carts, newFakeStash(), testLogger())

	_, err := svc.Submit(context.Background(), Identity{Email: "jane@example.com"}, &Request{
		Form:     testForm(),
		Items:    testItems(),
		FromCart: true,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(carts.cleared) != 0 {
		t.Error("cart must not be cleared when the order insert fails")
	}
}

func TestSubmitItemsInsertFailureKeepsCart(t *testing.T) {
	orders := &fakeOrderWriter{itemsErr: errors.New("insert failed")}
	carts := &fakeCartClearer{}
	svc := NewService(orders, carts, newFakeStash(), testLogger())

	_, err := svc.Submit(context.Background(), Identity{Email: "jane@example.com"}, &Request{
		Form:     testForm(),
		Items:    testItems(),
		FromCart: true,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	// The order row is already in; the failure surfaces but the cart
	// stays intact so the shopper can retry.
	if len(orders.orders) != 1 {
		t.Errorf("expected the order row to remain, got %d", len(orders.orders))
	}
	if len(carts.cleared) != 0 {
		t.Error("cart must not be cleared when the items insert fails")
	}
}

func TestSubmitDirectPurchaseLeavesCart(t *testing.T) {
	orders := &fakeOrderWriter{}
	carts := &fakeCartClearer{}
	svc := NewService(orders, carts, newFakeStash(), testLogger())

	_, err := svc.Submit(context.Background(), Identity{Email: "jane@example.com"}, &Request{
		Form:     testForm(),
		Items:    testItems()[:1],
		FromCart: false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(carts.cleared) != 0 {
		t.Error("direct purchase must not clear the cart")
	}
}

func TestSubmitCartClearFailureDoesNotFailOrder(t *testing.T) {
	orders := &fakeOrderWriter{}
	carts := &fakeCartClearer{clearErr: errors.New("redis down")}
	svc := NewService(orders, carts, newFakeStash(), testLogger())

	o, err := svc.Submit(context.Background(), Identity{Email: "jane@example.com"}, &Request{
		Form:     testForm(),
		Items:    testItems(),
		FromCart: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o == nil {
		t.Fatal("expected the order despite clear failure")
	}
}

func TestResumePopsPendingPurchase(t *testing.T) {
	stash := newFakeStash()
	svc := NewService(&fakeOrderWriter{}, &fakeCartClearer{}, stash, testLogger())

	items := testItems()
	stash.stashed["sess-1"] = &Pending{
		Form:     testForm(),
		Items:    items,
		Total:    19.99*2 + 5.50,
		FromCart: true,
	}

	got, err := svc.Resume(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Form.FullName != "Jane Buyer" {
		t.Fatalf("expected pending purchase back, got %+v", got)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items back, got %d", len(got.Items))
	}
	if got.Total != 19.99*2+5.50 {
		t.Errorf("expected total restored, got %f", got.Total)
	}

	// Second resume finds nothing.
	got, err = svc.Resume(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected stash emptied after first resume")
	}
}
