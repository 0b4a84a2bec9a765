// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Service wires cart managers to their stores. The shopper's identity
// decides the mode: a user email selects the database store, otherwise the
// Redis session store backs an anonymous cart.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
	log         *logrus.Logger
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
		log:         log,
	}
}

// StoreFor returns the store matching the shopper's identity
func (s *Service) StoreFor(userEmail, sessionID string) Store {
	if userEmail != "" {
		return NewDBStore(s.db, userEmail)
	}
	return NewSessionStore(s.redisClient, s.config, sessionID)
}

// ManagerFor builds a manager bound to the shopper's identity
func (s *Service) ManagerFor(userEmail, sessionID string, notifier Notifier) *Manager {
	return NewManager(s.StoreFor(userEmail, sessionID), notifier, s.log)
}

// ClearFor deletes every line of the shopper's cart without going through
// a manager. Used by checkout after the order items are persisted.
func (s *Service) ClearFor(ctx context.Context, userEmail, sessionID string) error {
	return s.StoreFor(userEmail, sessionID).Clear(ctx)
}

// MergeSessionCart folds an anonymous session cart into the user's
// database cart: union by product id, summing quantities. The session cart
// is cleared afterwards.
//
// This is deliberately not called on login; signing in switches the
// shopper to the remote cart and leaves the session cart untouched, which
// matches the storefront's historical behavior. The merge only runs when a
// client explicitly asks for it.
func (s *Service) MergeSessionCart(ctx context.Context, userEmail, sessionID string) error {
	if userEmail == "" {
		return fmt.Errorf("user email required for cart merge")
	}

	session := NewSessionStore(s.redisClient, s.config, sessionID)
	sessionItems, _, err := session.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session cart: %w", err)
	}
	if len(sessionItems) == 0 {
		return nil
	}

	userStore := NewDBStore(s.db, userEmail)
	userItems, _, err := userStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load user cart: %w", err)
	}

	byProduct := make(map[string]Item, len(userItems))
	for _, item := range userItems {
		byProduct[item.Product.ID.String()] = item
	}

	for _, sessionItem := range sessionItems {
		if existing, ok := byProduct[sessionItem.Product.ID.String()]; ok {
			err = userStore.UpdateQuantity(ctx, existing.ID, existing.Quantity+sessionItem.Quantity)
		} else {
			err = userStore.Insert(ctx, sessionItem.Product)
			if err == nil && sessionItem.Quantity > 1 {
				// The fresh line starts at quantity 1; bump it to the
				// session quantity.
				var inserted []Item
				inserted, _, err = userStore.Load(ctx)
				if err == nil {
					for _, line := range inserted {
						if line.Product.ID == sessionItem.Product.ID {
							err = userStore.UpdateQuantity(ctx, line.ID, sessionItem.Quantity)
							break
						}
					}
				}
			}
		}
		if err != nil {
			return fmt.Errorf("failed to merge cart item: %w", err)
		}
	}

	if err := session.Clear(ctx); err != nil {
		s.log.WithError(err).Warn("Merged session cart could not be cleared")
	}
	return nil
}
