/*
Package errors - application-level error codes and HTTP mapping.

Domain errors are normalized into AppError at exactly one place,
FromDomainError, by sentinel identity (errors.Is). Nothing in this package
or its callers matches on error message strings.
*/
package errors

import (
	"errors"

	"foody/domain/cart"
	"foody/domain/catalog"
	"foody/domain/order"
	"foody/domain/review"
	"foody/domain/shared"
	"foody/domain/voucher"
)

// ErrorCode is a stable machine-readable code returned to clients.
type ErrorCode string

const (
	// Generic codes
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest      ErrorCode = "BAD_REQUEST"
	CodeValidation      ErrorCode = "VALIDATION_ERROR"
	CodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	CodeForbidden       ErrorCode = "FORBIDDEN"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeConflict        ErrorCode = "CONFLICT"
	CodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"

	// Cart codes
	CodeCartNotFound       ErrorCode = "CART_001"
	CodeCartItemNotFound   ErrorCode = "CART_002"
	CodeQuantityCeiling    ErrorCode = "CART_003"
	CodeProductUnavailable ErrorCode = "CART_004"
	CodeShopClosed         ErrorCode = "CART_005"
	CodeInvalidQuantity    ErrorCode = "CART_006"

	// Order codes
	CodeOrderNotFound      ErrorCode = "ORDER_001"
	CodeInvalidTransition  ErrorCode = "ORDER_002"
	CodeNotOrderCustomer   ErrorCode = "ORDER_003"
	CodeNotShopOwner       ErrorCode = "ORDER_004"
	CodeNotAssignedShipper ErrorCode = "ORDER_005"
	CodeAlreadyAssigned    ErrorCode = "ORDER_006"
	CodeEmptyOrder         ErrorCode = "ORDER_007"
	CodeConcurrentModified ErrorCode = "ORDER_008"

	// Catalog codes
	CodeProductNotFound ErrorCode = "PRODUCT_001"
	CodeShopNotFound    ErrorCode = "SHOP_001"

	// Review codes
	CodeOrderNotReviewable ErrorCode = "REVIEW_001"
	CodeAlreadyReviewed    ErrorCode = "REVIEW_002"
	CodeReviewNotFound     ErrorCode = "REVIEW_003"

	// Voucher codes
	CodeVoucherInvalid ErrorCode = "VOUCHER_001"
)

// AppError carries an error code, a client-safe message and the underlying
// cause for logging.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return string(e.Code) + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap creates an AppError keeping the cause for logs.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError      { return New(CodeBadRequest, message) }
func Validation(message string) *AppError      { return New(CodeValidation, message) }
func Unauthorized(message string) *AppError    { return New(CodeUnauthorized, message) }
func Forbidden(message string) *AppError       { return New(CodeForbidden, message) }
func NotFound(message string) *AppError        { return New(CodeNotFound, message) }
func Conflict(message string) *AppError        { return New(CodeConflict, message) }
func TooManyRequests(message string) *AppError { return New(CodeTooManyRequests, message) }
func Internal(message string) *AppError        { return New(CodeInternal, message) }

// sentinelCodes is the closed taxonomy: every domain sentinel that can
// escape the application layer maps to exactly one code. Ordering matters
// only in that specific sentinels are tried before the generic shared ones.
var sentinelCodes = []struct {
	sentinel error
	code     ErrorCode
}{
	{cart.ErrCartNotFound, CodeCartNotFound},
	{cart.ErrItemNotFound, CodeCartItemNotFound},
	{cart.ErrQuantityCeiling, CodeQuantityCeiling},
	{cart.ErrInvalidQuantity, CodeInvalidQuantity},
	{cart.ErrConcurrentModification, CodeConcurrentModified},

	{catalog.ErrProductNotFound, CodeProductNotFound},
	{catalog.ErrShopNotFound, CodeShopNotFound},
	{catalog.ErrProductUnavailable, CodeProductUnavailable},
	{catalog.ErrShopClosed, CodeShopClosed},

	{order.ErrOrderNotFound, CodeOrderNotFound},
	{order.ErrInvalidStateTransition, CodeInvalidTransition},
	{order.ErrNotOrderCustomer, CodeNotOrderCustomer},
	{order.ErrNotShopOwner, CodeNotShopOwner},
	{order.ErrNotAssignedShipper, CodeNotAssignedShipper},
	{order.ErrAlreadyAssigned, CodeAlreadyAssigned},
	{order.ErrEmptyItems, CodeEmptyOrder},
	{order.ErrInvalidQuantity, CodeInvalidQuantity},
	{order.ErrConcurrentModification, CodeConcurrentModified},
	{order.ErrAlreadyReviewed, CodeAlreadyReviewed},

	{review.ErrReviewNotFound, CodeReviewNotFound},
	{review.ErrInvalidRating, CodeValidation},
	{review.ErrOrderNotReviewable, CodeOrderNotReviewable},

	{voucher.ErrVoucherNotFound, CodeVoucherInvalid},
	{voucher.ErrVoucherNotUsable, CodeVoucherInvalid},

	{shared.ErrInvalidInput, CodeValidation},
	{shared.ErrForbidden, CodeForbidden},
	{shared.ErrUnauthorized, CodeUnauthorized},
	{shared.ErrNotFound, CodeNotFound},
	{shared.ErrConflict, CodeConflict},
}

// FromDomainError normalizes any error escaping the application layer into
// an AppError. Unrecognized errors become INTERNAL_ERROR with a generic
// client message; the cause stays attached for logging.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, m := range sentinelCodes {
		if errors.Is(err, m.sentinel) {
			return Wrap(err, m.code, err.Error())
		}
	}

	return Wrap(err, CodeInternal, "internal server error")
}

// Is reports whether err normalizes to the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
