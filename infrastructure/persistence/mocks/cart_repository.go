package mocks

import (
	"context"
	"sync"

	"storefront/domain/cart"
	"storefront/domain/shared"

	"github.com/google/uuid"
)

// CartRepository in-memory implementation of the cart repository
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]*cart.Cart // keyed by user ID
}

// NewCartRepository creates an empty in-memory cart repository
func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[string]*cart.Cart)}
}

// NextIdentity generates a new cart ID
func (r *CartRepository) NextIdentity() string {
	return "cart-" + uuid.New().String()
}

// FindByUserID returns the user's cart or shared.ErrNotFound
func (r *CartRepository) FindByUserID(ctx context.Context, userID string) (*cart.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[userID]
	if !ok {
		return nil, shared.NewNotFoundError("cart")
	}
	clone := *c
	clone.Items = append([]cart.Item(nil), c.Items...)
	return &clone, nil
}

// Save stores the cart
func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *c
	clone.Items = append([]cart.Item(nil), c.Items...)
	r.carts[c.UserID] = &clone
	return nil
}

// Delete drops the user's cart
func (r *CartRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, userID)
	return nil
}

// Compile-time interface implementation check
// Snapshot copies the repository state for unit of work rollback
func (r *CartRepository) Snapshot() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*cart.Cart, len(r.carts))
	for userID, c := range r.carts {
		clone := *c
		clone.Items = append([]cart.Item(nil), c.Items...)
		out[userID] = &clone
	}
	return out
}

// Restore puts a snapshot back
func (r *CartRepository) Restore(state any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts = state.(map[string]*cart.Cart)
}

var _ cart.Repository = (*CartRepository)(nil)
