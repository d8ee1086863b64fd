// internal/infrastructure/database/redis/cart_repository.go
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/domain/cart"
)

// CartRepository persists guest session carts as JSON values with a TTL, so
// an anonymous cart survives reloads but expires after the configured window.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a Redis-backed cart repository.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{client: client, ttl: ttl}
}

func cartKey(owner string) string {
	return "cart:" + owner
}

// Load returns the stored cart, or an empty cart when the key is absent
// or expired.
func (r *CartRepository) Load(ctx context.Context, owner string) (*cart.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(owner)).Result()
	if err == redis.Nil {
		return cart.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	if c.Items == nil {
		c.Items = []cart.CartItem{}
	}
	return &c, nil
}

// Save stores the cart and refreshes its TTL.
func (r *CartRepository) Save(ctx context.Context, owner string, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := r.client.Set(ctx, cartKey(owner), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cart: %w", err)
	}
	return nil
}

// Delete drops the owner's cart.
func (r *CartRepository) Delete(ctx context.Context, owner string) error {
	if err := r.client.Del(ctx, cartKey(owner)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
