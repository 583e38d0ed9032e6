package voucher

import (
	"errors"

	"foody/domain/shared"
)

var (
	// ErrVoucherNotFound no voucher exists with the given code
	ErrVoucherNotFound = errors.New("voucher not found")

	// ErrVoucherNotUsable voucher exists but cannot apply to this order
	ErrVoucherNotUsable = errors.New("voucher cannot be applied")
)

// NewVoucherNotFoundError creates a voucher-not-found error with stack.
func NewVoucherNotFoundError(code string) error {
	return &voucherDomainError{
		sentinel: ErrVoucherNotFound,
		message:  "voucher " + code + " not found",
		stack:    shared.CaptureStack(3),
	}
}

// NewVoucherNotUsableError creates a not-usable error naming the reason.
func NewVoucherNotUsableError(code, reason string) error {
	return &voucherDomainError{
		sentinel: ErrVoucherNotUsable,
		message:  "voucher " + code + ": " + reason,
		stack:    shared.CaptureStack(3),
	}
}

// voucherDomainError implements error, Unwrap and shared.Stacker.
type voucherDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *voucherDomainError) Error() string {
	return e.message
}

func (e *voucherDomainError) Unwrap() error {
	return e.sentinel
}

func (e *voucherDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
