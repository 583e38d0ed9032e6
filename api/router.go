package api

import (
	"foody/api/cart"
	"foody/api/health"
	"foody/api/middleware"
	"foody/api/order"
	"foody/api/review"
	"foody/config"

	"github.com/gin-gonic/gin"
)

// Router route configuration.
type Router struct {
	engine           *gin.Engine
	config           *config.Config
	healthController *health.Controller
	cartController   *cart.Controller
	orderController  *order.Controller
	reviewController *review.Controller
}

// NewRouter wires the gin engine and the middleware chain.
func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	cartController *cart.Controller,
	orderController *order.Controller,
	reviewController *review.Controller,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Order matters: the request id must exist before anything logs.
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logging())
	engine.Use(middleware.CORS(&cfg.CORS))
	engine.Use(middleware.RateLimit(&cfg.Server.RateLimit))

	return &Router{
		engine:           engine,
		config:           cfg,
		healthController: healthController,
		cartController:   cartController,
		orderController:  orderController,
		reviewController: reviewController,
	}
}

// SetupRoutes registers every route group.
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)

		// Everything below requires an authenticated actor.
		authed := apiGroup.Group("")
		authed.Use(middleware.Actor())
		{
			r.cartController.RegisterRoutes(authed)
			r.orderController.RegisterRoutes(authed)
			r.reviewController.RegisterRoutes(authed)
		}
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine returns the gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
