// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Store is the persistence contract behind the cart manager. There are two
// implementations: a database store keyed by user email for authenticated
// shoppers, and a Redis session store holding a JSON-encoded item array for
// anonymous shoppers.
type Store interface {
	// Load returns all items plus the cart id (uuid.Nil for session carts).
	Load(ctx context.Context) ([]Item, uuid.UUID, error)
	// Insert adds a new line for the given product with quantity 1.
	Insert(ctx context.Context, snap product.Snapshot) error
	// UpdateQuantity sets the quantity of an existing line. Callers are
	// expected to have handled quantity < 1 as a removal already.
	UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	// Remove deletes a single line.
	Remove(ctx context.Context, itemID uuid.UUID) error
	// Clear deletes every line belonging to the cart.
	Clear(ctx context.Context) error
}

// dbStore persists cart lines in Postgres, one carts row per user email.
type dbStore struct {
	db    *gorm.DB
	email string
}

// NewDBStore creates the authenticated-mode store for a user email
func NewDBStore(db *gorm.DB, email string) Store {
	return &dbStore{db: db, email: email}
}

// ensureCart fetches the user's cart row, creating it when the probe comes
// back record-not-found. Any other error is propagated.
func (s *dbStore) ensureCart(ctx context.Context) (*Cart, error) {
	var c Cart
	err := s.db.WithContext(ctx).Where("user_email = ?", s.email).First(&c).Error
	if err == gorm.ErrRecordNotFound {
		c = Cart{UserEmail: s.email}
		if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}
		return &c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	return &c, nil
}

func (s *dbStore) Load(ctx context.Context) ([]Item, uuid.UUID, error) {
	c, err := s.ensureCart(ctx)
	if err != nil {
		return nil, uuid.Nil, err
	}

	var rows []CartItem
	err = s.db.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ?", c.ID).
		Order("created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("failed to load cart items: %w", err)
	}

	items := make([]Item, len(rows))
	for i, row := range rows {
		items[i] = Item{
			ID:       row.ID,
			Product:  row.Product.Snapshot(),
			Quantity: row.Quantity,
		}
	}
	return items, c.ID, nil
}

func (s *dbStore) Insert(ctx context.Context, snap product.Snapshot) error {
	c, err := s.ensureCart(ctx)
	if err != nil {
		return err
	}

	item := CartItem{
		CartID:    c.ID,
		ProductID: snap.ID,
		Quantity:  1,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return fmt.Errorf("failed to insert cart item: %w", err)
	}
	return nil
}

func (s *dbStore) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	result := s.db.WithContext(ctx).
		Model(&CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("item not found in cart")
	}
	return nil
}

func (s *dbStore) Remove(ctx context.Context, itemID uuid.UUID) error {
	if err := s.db.WithContext(ctx).Where("id = ?", itemID).Delete(&CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

func (s *dbStore) Clear(ctx context.Context) error {
	c, err := s.ensureCart(ctx)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("cart_id = ?", c.ID).Delete(&CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// sessionStore persists the anonymous cart in Redis under one fixed key per
// shopper session, as a JSON-encoded array of Item. An absent key reads as
// an empty cart, never as an error.
type sessionStore struct {
	client    *redis.Client
	sessionID string
	ttl       time.Duration
}

// NewSessionStore creates the anonymous-mode store for a session id
func NewSessionStore(client *redis.Client, cfg *config.Config, sessionID string) Store {
	return &sessionStore{
		client:    client,
		sessionID: sessionID,
		ttl:       cfg.Cart.SessionTTL,
	}
}

func (s *sessionStore) key() string {
	return fmt.Sprintf("cart:session:%s", s.sessionID)
}

func (s *sessionStore) load(ctx context.Context) ([]Item, error) {
	if s.sessionID == "" {
		return nil, fmt.Errorf("session id required for anonymous cart")
	}

	data, err := s.client.Get(ctx, s.key()).Result()
	if err == redis.Nil {
		return []Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session cart: %w", err)
	}

	var items []Item
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("failed to decode session cart: %w", err)
	}
	return items, nil
}

func (s *sessionStore) save(ctx context.Context, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode session cart: %w", err)
	}
	if err := s.client.Set(ctx, s.key(), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session cart: %w", err)
	}
	return nil
}

func (s *sessionStore) Load(ctx context.Context) ([]Item, uuid.UUID, error) {
	items, err := s.load(ctx)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return items, uuid.Nil, nil
}

func (s *sessionStore) Insert(ctx context.Context, snap product.Snapshot) error {
	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	items = append(items, Item{
		ID:       uuid.New(),
		Product:  snap,
		Quantity: 1,
	})
	return s.save(ctx, items)
}

func (s *sessionStore) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = quantity
			return s.save(ctx, items)
		}
	}
	return fmt.Errorf("item not found in cart")
}

func (s *sessionStore) Remove(ctx context.Context, itemID uuid.UUID) error {
	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	return s.save(ctx, kept)
}

// Clear removes the persisted entry entirely; a fresh Load afterwards
// yields an empty array, not a missing-key error.
func (s *sessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("failed to clear session cart: %w", err)
	}
	return nil
}
