/*
Package response - API layer response handling.

HTTP status mapping lives here and nowhere else: domain and application
errors carry no transport concepts. Internal errors never leak their real
message to the client; the cause is logged with the request id and the
stack captured at the point of failure.
*/
package response

import (
	stdErrors "errors"
	"net/http"
	"runtime"

	"foody/domain/shared"
	"foody/pkg/errors"
	"foody/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var httpStatusMap = map[errors.ErrorCode]int{
	errors.CodeInternal:        http.StatusInternalServerError,
	errors.CodeBadRequest:      http.StatusBadRequest,
	errors.CodeValidation:      http.StatusBadRequest,
	errors.CodeUnauthorized:    http.StatusUnauthorized,
	errors.CodeForbidden:       http.StatusForbidden,
	errors.CodeNotFound:        http.StatusNotFound,
	errors.CodeConflict:        http.StatusConflict,
	errors.CodeTooManyRequests: http.StatusTooManyRequests,

	errors.CodeCartNotFound:       http.StatusNotFound,
	errors.CodeCartItemNotFound:   http.StatusNotFound,
	errors.CodeQuantityCeiling:    http.StatusConflict,
	errors.CodeProductUnavailable: http.StatusConflict,
	errors.CodeShopClosed:         http.StatusConflict,
	errors.CodeInvalidQuantity:    http.StatusBadRequest,

	errors.CodeOrderNotFound:      http.StatusNotFound,
	errors.CodeInvalidTransition:  http.StatusConflict,
	errors.CodeNotOrderCustomer:   http.StatusForbidden,
	errors.CodeNotShopOwner:       http.StatusForbidden,
	errors.CodeNotAssignedShipper: http.StatusForbidden,
	errors.CodeAlreadyAssigned:    http.StatusConflict,
	errors.CodeEmptyOrder:         http.StatusConflict,
	errors.CodeConcurrentModified: http.StatusConflict,

	errors.CodeProductNotFound: http.StatusNotFound,
	errors.CodeShopNotFound:    http.StatusNotFound,

	errors.CodeOrderNotReviewable: http.StatusConflict,
	errors.CodeAlreadyReviewed:    http.StatusConflict,
	errors.CodeReviewNotFound:     http.StatusNotFound,

	errors.CodeVoucherInvalid: http.StatusConflict,
}

func mapErrorCodeToHTTPStatus(code errors.ErrorCode) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// HandleAppError normalizes the error, maps its code to an HTTP status and
// writes the error envelope.
func HandleAppError(c *gin.Context, err error) {
	requestID := GetRequestID(c)
	appErr := errors.FromDomainError(err)
	httpStatus := mapErrorCodeToHTTPStatus(appErr.Code)

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("http_status", httpStatus),
		zap.Strings("stack", extractStack(err)),
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}
	logger.Error(appErr.Message, fields...)

	userMessage := appErr.Message
	if appErr.Code == errors.CodeInternal {
		userMessage = "internal server error"
	}

	c.JSON(httpStatus, &Envelope{
		Success: false,
		Data: &ErrorBody{
			Message:   userMessage,
			ErrorCode: string(appErr.Code),
		},
		Timestamp: timestamp(),
	})
}

// HandleBindingError writes a 400 envelope for request binding failures,
// carrying the binding detail so clients can fix the payload.
func HandleBindingError(c *gin.Context, err error) {
	requestID := GetRequestID(c)

	logger.Warn("request binding failed",
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err))

	c.JSON(http.StatusBadRequest, &Envelope{
		Success: false,
		Data: &ErrorBody{
			Message:   "invalid request",
			ErrorCode: string(errors.CodeValidation),
			Details:   err.Error(),
		},
		Timestamp: timestamp(),
	})
}

// extractStack prefers the stack captured where the error was created.
// Errors without one get the handling-point stack as a fallback.
func extractStack(err error) []string {
	var stacker shared.Stacker
	if stdErrors.As(err, &stacker) {
		if stack := stacker.Stack(); len(stack) > 0 {
			return stack
		}
	}
	return captureStack(4)
}

func captureStack(skip int) []string {
	var pcs [16]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	stack := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		frame, more := frames.Next()
		if frame.Function != "" {
			stack = append(stack, frame.Function)
		}
		if !more {
			break
		}
	}
	return stack
}
