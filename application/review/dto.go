package review

import "time"

// CreateReviewRequest input for reviewing a delivered order.
type CreateReviewRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ReviewQuery query-string filters for the shop review listing.
type ReviewQuery struct {
	Page  int `form:"page,default=1" binding:"omitempty,min=1"`
	Limit int `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}

// ReviewResponse one review.
type ReviewResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"orderId"`
	CustomerID string    `json:"customerId"`
	ShopID     string    `json:"shopId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PagedReviewsResponse a page of reviews plus pagination fields.
type PagedReviewsResponse struct {
	Reviews    []*ReviewResponse `json:"reviews"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"totalPages"`
}
