package cart

import "context"

// Repository persistence for the cart aggregate.
//
// Save enforces optimistic locking: when the persisted version differs from
// the aggregate's loaded version it returns ErrConcurrentModification, which
// the unit of work retries. This is what makes the add-to-cart increment a
// true read-modify-write instead of a blind overwrite.
type Repository interface {
	// FindByCustomerID loads the customer's cart or returns ErrCartNotFound.
	FindByCustomerID(ctx context.Context, customerID string) (*Cart, error)

	// Save creates or updates the cart. An empty cart must not be saved;
	// callers delete instead.
	Save(ctx context.Context, c *Cart) error

	// Delete removes the cart document. Deleting an absent cart is a no-op.
	Delete(ctx context.Context, customerID string) error
}
