package po

import (
	"time"

	"foody/domain/review"
)

// ReviewPO review row. Rows are insert-only; reviews never change after
// creation.
type ReviewPO struct {
	ID         string    `gorm:"column:id;type:varchar(36);primaryKey"`
	OrderID    string    `gorm:"column:order_id;type:varchar(36);not null;uniqueIndex:uk_reviews_order"`
	CustomerID string    `gorm:"column:customer_id;type:varchar(36);not null"`
	ShopID     string    `gorm:"column:shop_id;type:varchar(36);not null;index:idx_reviews_shop"`
	Rating     int       `gorm:"column:rating;not null"`
	Comment    string    `gorm:"column:comment;type:varchar(2000)"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

// TableName specifies the table name
func (ReviewPO) TableName() string {
	return "reviews"
}

// ReviewProductPO links a review to the products of the reviewed order, so
// per-product rating aggregates can be recomputed with one join.
type ReviewProductPO struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement"`
	ReviewID  string `gorm:"column:review_id;type:varchar(36);not null;index:idx_review_products_review"`
	ProductID string `gorm:"column:product_id;type:varchar(36);not null;index:idx_review_products_product"`
}

// TableName specifies the table name
func (ReviewProductPO) TableName() string {
	return "review_products"
}

// FromReviewDomain converts a Review aggregate to its row representations.
func FromReviewDomain(r *review.Review) (*ReviewPO, []*ReviewProductPO) {
	reviewPO := &ReviewPO{
		ID:         r.ID(),
		OrderID:    r.OrderID(),
		CustomerID: r.CustomerID(),
		ShopID:     r.ShopID(),
		Rating:     r.Rating(),
		Comment:    r.Comment(),
		CreatedAt:  r.CreatedAt(),
	}

	productIDs := r.ProductIDs()
	productPOs := make([]*ReviewProductPO, 0, len(productIDs))
	for _, productID := range productIDs {
		productPOs = append(productPOs, &ReviewProductPO{
			ReviewID:  r.ID(),
			ProductID: productID,
		})
	}

	return reviewPO, productPOs
}

// ToDomain reconstructs the Review aggregate from its rows.
func (p *ReviewPO) ToDomain(productPOs []*ReviewProductPO) *review.Review {
	productIDs := make([]string, 0, len(productPOs))
	for _, productPO := range productPOs {
		productIDs = append(productIDs, productPO.ProductID)
	}

	return review.RebuildFromDTO(review.ReconstructionDTO{
		ID:         p.ID,
		OrderID:    p.OrderID,
		CustomerID: p.CustomerID,
		ShopID:     p.ShopID,
		Rating:     p.Rating,
		Comment:    p.Comment,
		ProductIDs: productIDs,
		CreatedAt:  p.CreatedAt,
	})
}
