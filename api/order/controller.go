/*
Package order - order API controller.

Routes mirror the three actors of the order lifecycle: customers create,
list and cancel; owners confirm, prepare, ready and cancel; shippers
accept, ship and deliver. Role and ownership checks happen in the
application service against the actor extracted by the middleware.
*/
package order

import (
	"context"

	"foody/api/middleware"
	"foody/api/response"
	orderapp "foody/application/order"
	"foody/domain/shared"

	"github.com/gin-gonic/gin"
)

// Controller order endpoints.
type Controller struct {
	orderService *orderapp.ApplicationService
}

// NewController creates an order controller.
func NewController(orderService *orderapp.ApplicationService) *Controller {
	return &Controller{orderService: orderService}
}

// RegisterRoutes registers order routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("", c.CreateOrder)
		orderGroup.GET("", c.GetMyOrders)

		orderGroup.GET("/shop", c.GetShopOrders)
		orderGroup.GET("/shop/:id", c.GetOrderDetail)

		orderGroup.GET("/shipper", c.GetShipperOrders)
		orderGroup.GET("/shipper/available", c.GetAvailableOrders)
		orderGroup.GET("/shipper/:id", c.GetOrderDetail)

		orderGroup.GET("/:id", c.GetOrderDetail)
		orderGroup.PUT("/:id/cancel", c.CancelOrder)
		orderGroup.PUT("/:id/confirm", c.ConfirmOrder)
		orderGroup.PUT("/:id/preparing", c.MarkPreparing)
		orderGroup.PUT("/:id/ready", c.MarkReady)
		orderGroup.PUT("/:id/owner-cancel", c.OwnerCancelOrder)
		orderGroup.PUT("/:id/accept", c.AcceptOrder)
		orderGroup.PUT("/:id/shipping", c.MarkShipping)
		orderGroup.PUT("/:id/delivered", c.MarkDelivered)
	}
}

// CreateOrder converts one shop's cart group into an order.
// POST /api/v1/orders
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindingError(ctx, err)
		return
	}

	order, err := c.orderService.CreateOrder(ctx.Request.Context(), middleware.ActorFrom(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, order)
}

// GetMyOrders lists the caller's orders.
// GET /api/v1/orders
func (c *Controller) GetMyOrders(ctx *gin.Context) {
	var query orderapp.ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleBindingError(ctx, err)
		return
	}

	page, err := c.orderService.GetMyOrders(ctx.Request.Context(), middleware.ActorFrom(ctx), query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, page)
}

// GetShopOrders lists orders of the caller's shop.
// GET /api/v1/orders/shop
func (c *Controller) GetShopOrders(ctx *gin.Context) {
	var query orderapp.ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleBindingError(ctx, err)
		return
	}

	page, err := c.orderService.GetShopOrders(ctx.Request.Context(), middleware.ActorFrom(ctx), query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, page)
}

// GetShipperOrders lists orders assigned to the caller.
// GET /api/v1/orders/shipper
func (c *Controller) GetShipperOrders(ctx *gin.Context) {
	var query orderapp.ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleBindingError(ctx, err)
		return
	}

	page, err := c.orderService.GetShipperOrders(ctx.Request.Context(), middleware.ActorFrom(ctx), query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, page)
}

// GetAvailableOrders lists READY, unassigned orders for shippers.
// GET /api/v1/orders/shipper/available
func (c *Controller) GetAvailableOrders(ctx *gin.Context) {
	var query orderapp.ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleBindingError(ctx, err)
		return
	}

	page, err := c.orderService.GetAvailableOrders(ctx.Request.Context(), middleware.ActorFrom(ctx), query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, page)
}

// GetOrderDetail returns one order, scoped to the caller's role.
// GET /api/v1/orders/:id, /api/v1/orders/shop/:id, /api/v1/orders/shipper/:id
func (c *Controller) GetOrderDetail(ctx *gin.Context) {
	order, err := c.orderService.GetOrderDetail(ctx.Request.Context(), middleware.ActorFrom(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order)
}

// CancelOrder cancellation by the ordering customer.
// PUT /api/v1/orders/:id/cancel
func (c *Controller) CancelOrder(ctx *gin.Context) {
	c.cancel(ctx, c.orderService.CancelOrder)
}

// OwnerCancelOrder cancellation by the shop owner.
// PUT /api/v1/orders/:id/owner-cancel
func (c *Controller) OwnerCancelOrder(ctx *gin.Context) {
	c.cancel(ctx, c.orderService.OwnerCancelOrder)
}

func (c *Controller) cancel(ctx *gin.Context, op func(context.Context, shared.Actor, string, orderapp.CancelOrderRequest) (*orderapp.OrderResponse, error)) {
	var req orderapp.CancelOrderRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.HandleBindingError(ctx, err)
			return
		}
	}

	order, err := op(ctx.Request.Context(), middleware.ActorFrom(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order)
}

// ConfirmOrder owner accepts a PENDING order.
// PUT /api/v1/orders/:id/confirm
func (c *Controller) ConfirmOrder(ctx *gin.Context) {
	c.transition(ctx, c.orderService.ConfirmOrder)
}

// MarkPreparing owner starts preparing.
// PUT /api/v1/orders/:id/preparing
func (c *Controller) MarkPreparing(ctx *gin.Context) {
	c.transition(ctx, c.orderService.MarkPreparing)
}

// MarkReady owner marks the order ready for pickup.
// PUT /api/v1/orders/:id/ready
func (c *Controller) MarkReady(ctx *gin.Context) {
	c.transition(ctx, c.orderService.MarkReady)
}

// AcceptOrder shipper claims a READY order.
// PUT /api/v1/orders/:id/accept
func (c *Controller) AcceptOrder(ctx *gin.Context) {
	c.transition(ctx, c.orderService.AcceptOrder)
}

// MarkShipping shipper re-confirms the order is on its way.
// PUT /api/v1/orders/:id/shipping
func (c *Controller) MarkShipping(ctx *gin.Context) {
	c.transition(ctx, c.orderService.MarkShipping)
}

// MarkDelivered shipper confirms delivery.
// PUT /api/v1/orders/:id/delivered
func (c *Controller) MarkDelivered(ctx *gin.Context) {
	c.transition(ctx, c.orderService.MarkDelivered)
}

func (c *Controller) transition(ctx *gin.Context, op func(context.Context, shared.Actor, string) (*orderapp.OrderResponse, error)) {
	order, err := op(ctx.Request.Context(), middleware.ActorFrom(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order)
}
