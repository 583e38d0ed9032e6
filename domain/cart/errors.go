/*
Package cart - cart subdomain errors.

Sentinels support errors.Is(); constructors capture the stack at the point
of failure so the API layer can log where a rejection originated.
*/
package cart

import (
	"errors"
	"fmt"

	"foody/domain/shared"
)

var (
	// ErrCartNotFound no cart document exists for the customer
	ErrCartNotFound = errors.New("cart not found")

	// ErrItemNotFound the product is not in the cart
	ErrItemNotFound = errors.New("cart item not found")

	// ErrQuantityCeiling accumulated quantity would exceed the per-item limit
	ErrQuantityCeiling = errors.New("quantity exceeds the per-item limit")

	// ErrInvalidQuantity requested quantity is not in [1, MaxItemQuantity]
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 999")

	// ErrConcurrentModification optimistic-lock conflict; caller should retry
	ErrConcurrentModification = errors.New("cart was modified by another request, please retry")
)

// NewCartNotFoundError creates a cart-not-found error with stack.
func NewCartNotFoundError(customerID string) error {
	return &cartDomainError{
		sentinel: ErrCartNotFound,
		message:  "cart not found for customer " + customerID,
		stack:    shared.CaptureStack(3),
	}
}

// NewItemNotFoundError creates an item-not-found error with stack.
func NewItemNotFoundError(productID string) error {
	return &cartDomainError{
		sentinel: ErrItemNotFound,
		message:  "product " + productID + " is not in the cart",
		stack:    shared.CaptureStack(3),
	}
}

// NewQuantityCeilingError names the current and attempted amounts, per the
// client contract: users see exactly how far over the limit they went.
func NewQuantityCeilingError(productID string, current, requested int) error {
	return &cartDomainError{
		sentinel: ErrQuantityCeiling,
		message: fmt.Sprintf(
			"cannot add %d of product %s: cart already holds %d and the limit per item is %d",
			requested, productID, current, MaxItemQuantity),
		stack: shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic-lock conflict error.
func NewConcurrentModificationError(customerID string) error {
	return &cartDomainError{
		sentinel: ErrConcurrentModification,
		message:  "cart of customer " + customerID + " was modified by another request, please retry",
		stack:    shared.CaptureStack(3),
	}
}

// cartDomainError implements error, Unwrap and shared.Stacker.
type cartDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *cartDomainError) Error() string {
	return e.message
}

func (e *cartDomainError) Unwrap() error {
	return e.sentinel
}

func (e *cartDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
