// Package review - review API controller.
package review

import (
	"foody/api/middleware"
	"foody/api/response"
	reviewapp "foody/application/review"

	"github.com/gin-gonic/gin"
)

// Controller review endpoints.
type Controller struct {
	reviewService *reviewapp.ApplicationService
}

// NewController creates a review controller.
func NewController(reviewService *reviewapp.ApplicationService) *Controller {
	return &Controller{reviewService: reviewService}
}

// RegisterRoutes registers review routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	reviewGroup := router.Group("/reviews")
	{
		reviewGroup.POST("", c.CreateReview)
		reviewGroup.GET("/shop/:shopId", c.GetShopReviews)
	}
}

// CreateReview reviews a delivered order.
// POST /api/v1/reviews
func (c *Controller) CreateReview(ctx *gin.Context) {
	var req reviewapp.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindingError(ctx, err)
		return
	}

	review, err := c.reviewService.CreateReview(ctx.Request.Context(), middleware.ActorFrom(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, review)
}

// GetShopReviews lists a shop's reviews.
// GET /api/v1/reviews/shop/:shopId
func (c *Controller) GetShopReviews(ctx *gin.Context) {
	var query reviewapp.ReviewQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleBindingError(ctx, err)
		return
	}

	page, err := c.reviewService.GetShopReviews(ctx.Request.Context(), ctx.Param("shopId"), query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, page)
}
