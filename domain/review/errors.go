package review

import (
	"errors"
	"fmt"

	"foody/domain/shared"
)

var (
	// ErrReviewNotFound no review exists with the given id
	ErrReviewNotFound = errors.New("review not found")

	// ErrInvalidRating rating is outside [MinRating, MaxRating]
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrOrderNotReviewable order is not delivered or already carries a review
	ErrOrderNotReviewable = errors.New("order is not reviewable")
)

// NewReviewNotFoundError creates a review-not-found error with stack.
func NewReviewNotFoundError(id string) error {
	return &reviewDomainError{
		sentinel: ErrReviewNotFound,
		message:  "review " + id + " not found",
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidRatingError creates an out-of-range rating error with stack.
func NewInvalidRatingError(rating int) error {
	return &reviewDomainError{
		sentinel: ErrInvalidRating,
		message:  fmt.Sprintf("rating %d is out of range, must be between %d and %d", rating, MinRating, MaxRating),
		stack:    shared.CaptureStack(3),
	}
}

// NewOrderNotReviewableError creates a not-reviewable error with stack.
func NewOrderNotReviewableError(orderID string) error {
	return &reviewDomainError{
		sentinel: ErrOrderNotReviewable,
		message:  "order " + orderID + " is not in a reviewable state",
		stack:    shared.CaptureStack(3),
	}
}

// reviewDomainError implements error, Unwrap and shared.Stacker.
type reviewDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *reviewDomainError) Error() string {
	return e.message
}

func (e *reviewDomainError) Unwrap() error {
	return e.sentinel
}

func (e *reviewDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
