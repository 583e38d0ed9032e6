// Package mocks provides in-memory repository implementations. They back
// the "mock" database mode for local development and the application-layer
// tests, and they enforce the same optimistic-locking contract as the MySQL
// repositories so concurrency behavior can be tested without a database.
package mocks

import (
	"context"
	"sync"

	"foody/domain/cart"
	"foody/domain/shared"
)

// CartRepository in-memory cart store with version checking.
type CartRepository struct {
	mu       sync.RWMutex
	carts    map[string]*cart.Cart
	versions map[string]int
}

// NewCartRepository creates an empty in-memory cart repository.
func NewCartRepository() *CartRepository {
	return &CartRepository{
		carts:    make(map[string]*cart.Cart),
		versions: make(map[string]int),
	}
}

// FindByCustomerID returns an isolated copy of the stored cart.
func (r *CartRepository) FindByCustomerID(ctx context.Context, customerID string) (*cart.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.carts[customerID]
	if !ok {
		return nil, cart.NewCartNotFoundError(customerID)
	}
	return cloneCart(stored), nil
}

// Save stores the cart, enforcing the optimistic-lock contract: the
// aggregate's loaded version must match the stored one.
func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	if c.IsEmpty() {
		return shared.NewValidationError("cart", "items", "an empty cart must be deleted, not saved")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	storedVersion, exists := r.versions[c.CustomerID()]
	if c.IsNew() {
		if exists {
			return cart.NewConcurrentModificationError(c.CustomerID())
		}
		r.carts[c.CustomerID()] = cloneCart(c)
		r.versions[c.CustomerID()] = c.Version()
		c.ClearDirtyTracking()
		return nil
	}

	if !exists {
		return cart.NewCartNotFoundError(c.CustomerID())
	}
	if storedVersion != c.Version() {
		return cart.NewConcurrentModificationError(c.CustomerID())
	}

	c.IncrementVersionForSave()
	r.carts[c.CustomerID()] = cloneCart(c)
	r.versions[c.CustomerID()] = c.Version()
	c.ClearDirtyTracking()
	return nil
}

// Delete removes the cart. Deleting an absent cart is a no-op.
func (r *CartRepository) Delete(ctx context.Context, customerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, customerID)
	delete(r.versions, customerID)
	return nil
}

type cartState struct {
	carts    map[string]*cart.Cart
	versions map[string]int
}

func (r *CartRepository) snapshot() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state := cartState{
		carts:    make(map[string]*cart.Cart, len(r.carts)),
		versions: make(map[string]int, len(r.versions)),
	}
	for id, c := range r.carts {
		state.carts[id] = cloneCart(c)
	}
	for id, version := range r.versions {
		state.versions[id] = version
	}
	return state
}

func (r *CartRepository) restore(snapshot any) {
	state := snapshot.(cartState)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts = state.carts
	r.versions = state.versions
}

// cloneCart deep-copies a cart through its reconstruction DTO so callers
// never share item slices with the store.
func cloneCart(c *cart.Cart) *cart.Cart {
	return cart.RebuildFromDTO(cart.ReconstructionDTO{
		CustomerID: c.CustomerID(),
		Items:      c.Items(),
		Version:    c.Version(),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	})
}

var _ cart.Repository = (*CartRepository)(nil)
