/*
Package order - order subdomain errors.

Sentinels support errors.Is() classification; constructors capture the stack
at the point of failure. Status-transition rejections always name the current
status and the attempted operation so clients can show a meaningful message.
*/
package order

import (
	"errors"
	"fmt"

	"foody/domain/shared"
)

var (
	// ErrOrderNotFound order absent
	ErrOrderNotFound = errors.New("order not found")

	// ErrConcurrentModification optimistic-lock conflict; caller should retry
	ErrConcurrentModification = errors.New("order was modified by another transaction, please retry")

	// ErrInvalidStateTransition the operation is not legal from the current status
	ErrInvalidStateTransition = errors.New("invalid order state transition")

	// ErrAlreadyAssigned a shipper already accepted this order
	ErrAlreadyAssigned = errors.New("order is already assigned to a shipper")

	// ErrNotAssignedShipper the caller is not the shipper assigned to this order
	ErrNotAssignedShipper = errors.New("order is assigned to a different shipper")

	// ErrNotOrderCustomer the caller is not the customer who placed the order
	ErrNotOrderCustomer = errors.New("order belongs to a different customer")

	// ErrNotShopOwner the caller does not own the order's shop
	ErrNotShopOwner = errors.New("order belongs to a different shop")

	// ErrEmptyItems an order must carry at least one line item
	ErrEmptyItems = errors.New("order must have at least one item")

	// ErrInvalidQuantity line item quantity must be positive
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrAlreadyReviewed a review is already linked to the order
	ErrAlreadyReviewed = errors.New("order already has a review")
)

// NewOrderNotFoundError creates an order-not-found error with stack.
func NewOrderNotFoundError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrOrderNotFound,
		message:  "order not found: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic-lock conflict error.
func NewConcurrentModificationError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrConcurrentModification,
		message:  "order " + orderID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidTransitionError names the attempted operation and current status.
func NewInvalidTransitionError(operation string, current Status) error {
	return &orderDomainError{
		sentinel: ErrInvalidStateTransition,
		message:  fmt.Sprintf("cannot %s an order in status %s", operation, current),
		stack:    shared.CaptureStack(3),
	}
}

// NewAlreadyAssignedError creates an assignment-race loser error.
func NewAlreadyAssignedError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrAlreadyAssigned,
		message:  "order " + orderID + " is already assigned to a shipper",
		stack:    shared.CaptureStack(3),
	}
}

// NewNotAssignedShipperError creates a wrong-shipper error.
func NewNotAssignedShipperError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrNotAssignedShipper,
		message:  "order " + orderID + " is assigned to a different shipper",
		stack:    shared.CaptureStack(3),
	}
}

// NewNotOrderCustomerError creates a wrong-customer error.
func NewNotOrderCustomerError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrNotOrderCustomer,
		message:  "order " + orderID + " belongs to a different customer",
		stack:    shared.CaptureStack(3),
	}
}

// NewNotShopOwnerError creates a wrong-owner error.
func NewNotShopOwnerError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrNotShopOwner,
		message:  "order " + orderID + " belongs to a different shop",
		stack:    shared.CaptureStack(3),
	}
}

// orderDomainError implements error, Unwrap and shared.Stacker.
type orderDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *orderDomainError) Error() string {
	return e.message
}

func (e *orderDomainError) Unwrap() error {
	return e.sentinel
}

func (e *orderDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
