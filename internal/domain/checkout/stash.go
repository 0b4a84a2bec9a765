// internal/domain/checkout/stash.go
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
)

// redisStash keeps pending purchases in Redis under one key per session,
// expiring after the configured stash TTL.
type redisStash struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStash creates the Redis-backed checkout stash
func NewRedisStash(client *redis.Client, cfg *config.Config) Stash {
	return &redisStash{
		client: client,
		ttl:    cfg.Cart.StashTTL,
	}
}

func (s *redisStash) key(sessionID string) string {
	return fmt.Sprintf("checkout:pending:%s", sessionID)
}

func (s *redisStash) Put(ctx context.Context, sessionID string, pending *Pending) error {
	if sessionID == "" {
		return fmt.Errorf("session id required to stash pending checkout")
	}

	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to encode pending checkout: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to stash pending checkout: %w", err)
	}
	return nil
}

func (s *redisStash) Pop(ctx context.Context, sessionID string) (*Pending, error) {
	if sessionID == "" {
		return nil, nil
	}

	data, err := s.client.GetDel(ctx, s.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pending checkout: %w", err)
	}

	var pending Pending
	if err := json.Unmarshal([]byte(data), &pending); err != nil {
		return nil, fmt.Errorf("failed to decode pending checkout: %w", err)
	}
	return &pending, nil
}
