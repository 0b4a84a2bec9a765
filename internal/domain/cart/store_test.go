// internal/domain/cart/store_test.go
package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
)

func newTestSessionStore(t *testing.T) (Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cfg := &config.Config{
		Cart: config.CartConfig{SessionTTL: time.Hour},
	}
	return NewSessionStore(client, cfg, "sess-1"), mr
}

func TestSessionStoreLoadAbsentKey(t *testing.T) {
	store, _ := newTestSessionStore(t)

	items, cartID, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("absent key must read as an empty cart, got error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty item array, got %v", items)
	}
	if cartID != uuid.Nil {
		t.Errorf("session carts carry no server cart id, got %s", cartID)
	}
}

func TestSessionStoreInsertAndLoad(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	if err := store.Insert(ctx, snapshot(19.99)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Insert(ctx, snapshot(5.50)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, _, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Quantity != 1 || items[1].Quantity != 1 {
		t.Error("fresh lines must start at quantity 1")
	}
	if items[0].ID == uuid.Nil || items[0].ID == items[1].ID {
		t.Error("expected distinct generated item ids")
	}
}

func TestSessionStoreUpdateAndRemove(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	if err := store.Insert(ctx, snapshot(10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, _, _ := store.Load(ctx)

	if err := store.UpdateQuantity(ctx, items[0].ID, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, _, _ = store.Load(ctx)
	if items[0].Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", items[0].Quantity)
	}

	if err := store.UpdateQuantity(ctx, uuid.New(), 2); err == nil {
		t.Error("expected error for unknown item id")
	}

	if err := store.Remove(ctx, items[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, _, _ = store.Load(ctx)
	if len(items) != 0 {
		t.Errorf("expected empty cart after remove, got %d items", len(items))
	}
}

func TestSessionStoreClearThenLoad(t *testing.T) {
	store, mr := newTestSessionStore(t)
	ctx := context.Background()

	if err := store.Insert(ctx, snapshot(10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mr.Exists("cart:session:sess-1") {
		t.Error("clear must delete the session key entirely")
	}

	items, _, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load after clear must not fail, got: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty cart after clear, got %d items", len(items))
	}
}

func TestSessionStoreRequiresSessionID(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cfg := &config.Config{Cart: config.CartConfig{SessionTTL: time.Hour}}
	store := NewSessionStore(client, cfg, "")

	if _, _, err := store.Load(context.Background()); err == nil {
		t.Error("expected error for missing session id")
	}
}
