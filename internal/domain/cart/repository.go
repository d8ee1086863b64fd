// internal/domain/cart/repository.go
package cart

import (
	"context"
	"sync"
)

// Repository durably holds cart state across sessions. Owners are opaque keys
// such as "user:42" or "session:<uuid>". Loading an owner that has never saved
// a cart returns an empty cart, not an error.
type Repository interface {
	Load(ctx context.Context, owner string) (*Cart, error)
	Save(ctx context.Context, owner string, c *Cart) error
	Delete(ctx context.Context, owner string) error
}

// MemoryRepository is a process-local Repository, used when no durable store
// is configured and as a stand-in in tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: make(map[string]*Cart)}
}

// Load returns a copy of the stored cart, or an empty cart when absent.
func (r *MemoryRepository) Load(ctx context.Context, owner string) (*Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.carts[owner]; ok {
		return c.Clone(), nil
	}
	return New(), nil
}

// Save stores a copy of the cart under the owner key.
func (r *MemoryRepository) Save(ctx context.Context, owner string, c *Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[owner] = c.Clone()
	return nil
}

// Delete drops the owner's cart if present.
func (r *MemoryRepository) Delete(ctx context.Context, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, owner)
	return nil
}
