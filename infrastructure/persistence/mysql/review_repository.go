package mysql

import (
	"context"
	"errors"

	"foody/domain/review"
	"foody/infrastructure/persistence"
	"foody/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// ReviewRepository GORM implementation of review.Repository. Reviews are
// insert-only; there is no versioned update path.
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a review repository.
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID loads a review with its product links.
func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*review.Review, error) {
	var reviewPO po.ReviewPO
	if err := r.getDB(ctx).Where("id = ?", id).First(&reviewPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.NewReviewNotFoundError(id)
		}
		return nil, err
	}
	return r.withProducts(ctx, &reviewPO)
}

// FindByOrderID loads the review left on an order, if any.
func (r *ReviewRepository) FindByOrderID(ctx context.Context, orderID string) (*review.Review, error) {
	var reviewPO po.ReviewPO
	if err := r.getDB(ctx).Where("order_id = ?", orderID).First(&reviewPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.NewReviewNotFoundError(orderID)
		}
		return nil, err
	}
	return r.withProducts(ctx, &reviewPO)
}

// FindByShop lists a shop's reviews, newest first.
func (r *ReviewRepository) FindByShop(ctx context.Context, shopID string, page review.PageRequest) (*review.Page, error) {
	db := r.getDB(ctx)
	query := db.Model(&po.ReviewPO{}).Where("shop_id = ?", shopID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var reviewPOs []*po.ReviewPO
	if err := query.
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&reviewPOs).Error; err != nil {
		return nil, err
	}

	reviews := make([]*review.Review, 0, len(reviewPOs))
	for _, reviewPO := range reviewPOs {
		rebuilt, err := r.withProducts(ctx, reviewPO)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rebuilt)
	}

	return &review.Page{Reviews: reviews, Total: total}, nil
}

// Save inserts a new review with its product links. A duplicate order id
// means another request reviewed the order first.
func (r *ReviewRepository) Save(ctx context.Context, rev *review.Review) error {
	db := r.getDB(ctx)
	reviewPO, productPOs := po.FromReviewDomain(rev)

	if err := db.Create(reviewPO).Error; err != nil {
		if isDuplicateKeyError(err) {
			return review.NewOrderNotReviewableError(rev.OrderID())
		}
		return err
	}
	if len(productPOs) > 0 {
		if err := db.Create(productPOs).Error; err != nil {
			return err
		}
	}
	return nil
}

// ShopRatingAggregate recomputes a shop's average rating and review count.
// The stats worker calls this when a review.created event lands.
func (r *ReviewRepository) ShopRatingAggregate(ctx context.Context, shopID string) (float64, int, error) {
	var row struct {
		Avg   float64
		Count int
	}
	err := r.getDB(ctx).Model(&po.ReviewPO{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("shop_id = ?", shopID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Avg, row.Count, nil
}

// ProductRatingAggregate recomputes a product's average rating and review
// count across the reviews that include it.
func (r *ReviewRepository) ProductRatingAggregate(ctx context.Context, productID string) (float64, int, error) {
	var row struct {
		Avg   float64
		Count int
	}
	err := r.getDB(ctx).Model(&po.ReviewPO{}).
		Select("COALESCE(AVG(reviews.rating), 0) AS avg, COUNT(*) AS count").
		Joins("JOIN review_products ON review_products.review_id = reviews.id").
		Where("review_products.product_id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Avg, row.Count, nil
}

func (r *ReviewRepository) withProducts(ctx context.Context, reviewPO *po.ReviewPO) (*review.Review, error) {
	var productPOs []*po.ReviewProductPO
	if err := r.getDB(ctx).
		Where("review_id = ?", reviewPO.ID).
		Order("id ASC").
		Find(&productPOs).Error; err != nil {
		return nil, err
	}
	return reviewPO.ToDomain(productPOs), nil
}

var _ review.Repository = (*ReviewRepository)(nil)
