/*
Package cart - cart API controller.

Controllers parse the request, pull the actor set by the middleware, call
the application service, and hand results to the response package. No
business rules live here.
*/
package cart

import (
	"foody/api/middleware"
	"foody/api/response"
	cartapp "foody/application/cart"

	"github.com/gin-gonic/gin"
)

// Controller cart endpoints.
type Controller struct {
	cartService *cartapp.ApplicationService
}

// NewController creates a cart controller.
func NewController(cartService *cartapp.ApplicationService) *Controller {
	return &Controller{cartService: cartService}
}

// RegisterRoutes registers cart routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	cartGroup := router.Group("/cart")
	{
		cartGroup.POST("", c.AddToCart)
		cartGroup.GET("", c.GetCart)
		cartGroup.DELETE("", c.ClearCart)
		cartGroup.PUT("/:productId", c.UpdateItem)
		cartGroup.DELETE("/shop/:shopId", c.ClearByShop)
		cartGroup.DELETE("/:productId", c.RemoveItem)
	}
}

// AddToCart adds a product to the caller's cart.
// POST /api/v1/cart
func (c *Controller) AddToCart(ctx *gin.Context) {
	var req cartapp.AddToCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindingError(ctx, err)
		return
	}

	grouped, err := c.cartService.AddToCart(ctx.Request.Context(), middleware.ActorFrom(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, grouped)
}

// GetCart returns the caller's cart grouped by shop.
// GET /api/v1/cart
func (c *Controller) GetCart(ctx *gin.Context) {
	grouped, err := c.cartService.GetCartGrouped(ctx.Request.Context(), middleware.ActorFrom(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, grouped)
}

// UpdateItem overwrites one item's quantity.
// PUT /api/v1/cart/:productId
func (c *Controller) UpdateItem(ctx *gin.Context) {
	var req cartapp.UpdateCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindingError(ctx, err)
		return
	}

	grouped, err := c.cartService.UpdateCartItem(ctx.Request.Context(), middleware.ActorFrom(ctx), ctx.Param("productId"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, grouped)
}

// RemoveItem removes one product from the cart.
// DELETE /api/v1/cart/:productId
func (c *Controller) RemoveItem(ctx *gin.Context) {
	grouped, err := c.cartService.RemoveCartItem(ctx.Request.Context(), middleware.ActorFrom(ctx), ctx.Param("productId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, grouped)
}

// ClearByShop removes every item of one shop.
// DELETE /api/v1/cart/shop/:shopId
func (c *Controller) ClearByShop(ctx *gin.Context) {
	result, err := c.cartService.ClearCartByShop(ctx.Request.Context(), middleware.ActorFrom(ctx), ctx.Param("shopId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, result)
}

// ClearCart deletes the whole cart.
// DELETE /api/v1/cart
func (c *Controller) ClearCart(ctx *gin.Context) {
	if err := c.cartService.ClearCart(ctx.Request.Context(), middleware.ActorFrom(ctx)); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, gin.H{"cleared": true})
}
