package catalog

import (
	"errors"

	"foody/domain/shared"
)

var (
	// ErrProductNotFound product absent or soft-deleted beyond lookup
	ErrProductNotFound = errors.New("product not found")

	// ErrShopNotFound shop absent
	ErrShopNotFound = errors.New("shop not found")

	// ErrProductUnavailable product exists but cannot be ordered right now
	ErrProductUnavailable = errors.New("product is not available")

	// ErrShopClosed shop exists but is not accepting orders
	ErrShopClosed = errors.New("shop is closed")
)

// NewProductNotFoundError creates a product-not-found error with stack.
func NewProductNotFoundError(productID string) error {
	return &catalogDomainError{
		sentinel: ErrProductNotFound,
		message:  "product " + productID + " not found",
		stack:    shared.CaptureStack(3),
	}
}

// NewShopNotFoundError creates a shop-not-found error with stack.
func NewShopNotFoundError(shopID string) error {
	return &catalogDomainError{
		sentinel: ErrShopNotFound,
		message:  "shop " + shopID + " not found",
		stack:    shared.CaptureStack(3),
	}
}

// NewProductUnavailableError creates a product-unavailable error with stack.
func NewProductUnavailableError(productID string) error {
	return &catalogDomainError{
		sentinel: ErrProductUnavailable,
		message:  "product " + productID + " is not available",
		stack:    shared.CaptureStack(3),
	}
}

// NewShopClosedError creates a shop-closed error with stack.
func NewShopClosedError(shopID string) error {
	return &catalogDomainError{
		sentinel: ErrShopClosed,
		message:  "shop " + shopID + " is not accepting orders",
		stack:    shared.CaptureStack(3),
	}
}

// catalogDomainError implements error, Unwrap and shared.Stacker.
type catalogDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *catalogDomainError) Error() string {
	return e.message
}

func (e *catalogDomainError) Unwrap() error {
	return e.sentinel
}

func (e *catalogDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
