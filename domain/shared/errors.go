/*
Package shared - cross-subdomain building blocks of the domain layer.

Error design:
1. Sentinel errors support errors.Is() classification without string matching.
2. DomainError captures the stack at creation time but formats it lazily.
3. Domain errors carry no transport concepts (no HTTP status codes).
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	// ErrNotFound entity absent (product, shop, cart, order, cart item)
	ErrNotFound = errors.New("not found")

	// ErrConflict valid request but illegal given current state
	// (shop closed, quantity ceiling, illegal status transition, already assigned)
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput parameter validation failure
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized missing or invalid credentials (handled upstream)
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden authenticated actor lacks permission for this resource
	ErrForbidden = errors.New("forbidden")
)

// ============================================================================
// Structured domain error
// ============================================================================

// DomainError carries business context and the stack of the point of failure.
// Supports errors.Is() / errors.As() through Unwrap.
type DomainError struct {
	// Err underlying sentinel, used by errors.Is()
	Err error

	// Entity the entity the error relates to (e.g. "order", "cart")
	Entity string

	// Message human-readable description
	Message string

	// Field optional field name for validation errors
	Field string

	// stack call frames captured at creation, formatted on demand
	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured stack (called only when logging).
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// ============================================================================
// Stack helpers
// ============================================================================

// CaptureStack captures the current call stack.
// skip is usually 3: Callers, CaptureStack, NewXxxError.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders stack frames, filtering runtime internals,
// at most 10 frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// ============================================================================
// Constructors
// ============================================================================

// NewNotFoundError creates a "not found" domain error.
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a "conflict" domain error.
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a "validation failed" domain error.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewForbiddenError creates a "forbidden" domain error.
func NewForbiddenError(entity, reason string) error {
	return &DomainError{
		Err:     ErrForbidden,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// ============================================================================
// Stacker interface - used by the API layer to extract stacks uniformly
// ============================================================================

// Stacker is an error that can provide its creation-point stack.
type Stacker interface {
	Stack() []string
}
