package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"foody/api/response"
	"foody/config"
	"foody/domain/shared"
	"foody/pkg/errors"
	"foody/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// RequestIDHeader request id header
	RequestIDHeader = "X-Request-ID"

	// UserIDHeader verified caller id, set by the auth gateway upstream
	UserIDHeader = "X-User-ID"

	// UserRoleHeader verified caller role, set by the auth gateway upstream
	UserRoleHeader = "X-User-Role"

	// ActorKey gin context key holding the authenticated actor
	ActorKey = "actor"
)

// RequestID assigns or propagates the request id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(response.RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// Logging logs every request with latency and status.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		log := logger.WithRequestID(response.GetRequestID(c))

		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Error("HTTP Request", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("HTTP Request", fields...)
		default:
			log.Info("HTTP Request", fields...)
		}
	}
}

// Recovery turns panics into 500 envelopes.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Error("Panic recovered",
					zap.String("request_id", response.GetRequestID(c)),
					zap.Any("error", recovered),
					zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, &response.Envelope{
					Success: false,
					Data: &response.ErrorBody{
						Message:   "internal server error",
						ErrorCode: string(errors.CodeInternal),
					},
					Timestamp: time.Now().UTC().Format(time.RFC3339),
				})
			}
		}()

		c.Next()
	}
}

// Actor extracts the verified caller from the gateway headers. Requests
// without a valid id and role never reach a handler.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserIDHeader)
		role, ok := shared.ParseRole(c.GetHeader(UserRoleHeader))
		if userID == "" || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, &response.Envelope{
				Success: false,
				Data: &response.ErrorBody{
					Message:   "missing or invalid credentials",
					ErrorCode: string(errors.CodeUnauthorized),
				},
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			})
			return
		}

		c.Set(ActorKey, shared.Actor{ID: userID, Role: role})
		c.Next()
	}
}

// ActorFrom returns the actor placed by the Actor middleware.
func ActorFrom(c *gin.Context) shared.Actor {
	if v, exists := c.Get(ActorKey); exists {
		if actor, ok := v.(shared.Actor); ok {
			return actor
		}
	}
	return shared.Actor{}
}

// CORS configurable CORS handling.
func CORS(cfg *config.CORSConfig) gin.HandlerFunc {
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, o := range cfg.AllowOrigins {
			if o == "*" || o == origin {
				allowed = true
				break
			}
		}
		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
		}
		if cfg.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		c.Header("Access-Control-Allow-Methods", methods)
		c.Header("Access-Control-Allow-Headers", headers)
		c.Header("Access-Control-Max-Age", maxAge)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
}

// NewRateLimiter creates a rate limiter.
func NewRateLimiter(r float64, burst int) *RateLimiter {
	return &RateLimiter{
		rate:  rate.Limit(r),
		burst: burst,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	if limiter, ok := rl.limiters.Load(ip); ok {
		return limiter.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters.Store(ip, limiter)
	return limiter
}

// RateLimit per-IP rate limiting.
func RateLimit(cfg *config.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	limiter := NewRateLimiter(cfg.Rate, cfg.Burst)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.getLimiter(ip).Allow() {
			logger.Warn("Rate limit exceeded",
				zap.String("request_id", response.GetRequestID(c)),
				zap.String("client_ip", ip))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, &response.Envelope{
				Success: false,
				Data: &response.ErrorBody{
					Message:   "too many requests, please try again later",
					ErrorCode: string(errors.CodeTooManyRequests),
				},
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			})
			return
		}

		c.Next()
	}
}
