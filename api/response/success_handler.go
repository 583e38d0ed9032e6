package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleSuccess writes a 200 envelope.
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, &Envelope{
		Success:   true,
		Data:      data,
		Timestamp: timestamp(),
	})
}

// HandleCreated writes a 201 envelope.
func HandleCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, &Envelope{
		Success:   true,
		Data:      data,
		Timestamp: timestamp(),
	})
}

// GetRequestID returns the request id set by the middleware, if any.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}
