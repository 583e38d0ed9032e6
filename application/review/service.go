/*
Package review - review orchestration.

Creating a review writes the review and links it onto the order in one
transaction, so an order can never end up reviewed twice or pointing at a
review that was not written.
*/
package review

import (
	"context"

	"foody/domain/order"
	"foody/domain/review"
	"foody/domain/shared"
)

// ApplicationService coordinates review creation and reads.
type ApplicationService struct {
	reviews    review.Repository
	orders     order.Repository
	uowFactory shared.UnitOfWorkFactory
}

// NewApplicationService creates a review application service.
func NewApplicationService(
	reviews review.Repository,
	orders order.Repository,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		reviews:    reviews,
		orders:     orders,
		uowFactory: uowFactory,
	}
}

// CreateReview attaches a rating to a delivered order owned by the actor.
func (s *ApplicationService) CreateReview(ctx context.Context, actor shared.Actor, req CreateReviewRequest) (*ReviewResponse, error) {
	if !actor.IsCustomer() {
		return nil, shared.NewForbiddenError("review", "only customers may review orders")
	}

	var r *review.Review
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if o.CustomerID() != actor.ID {
			return order.NewNotOrderCustomerError(req.OrderID)
		}
		if o.Status() != order.StatusDelivered {
			return review.NewOrderNotReviewableError(req.OrderID)
		}

		productIDs := make([]string, len(o.Items()))
		for i, item := range o.Items() {
			productIDs[i] = item.ProductID()
		}

		r, err = review.NewReview(req.OrderID, actor.ID, o.ShopID(), req.Rating, req.Comment, productIDs)
		if err != nil {
			return err
		}

		// LinkReview rejects a second review on the same order.
		if err := o.LinkReview(r.ID()); err != nil {
			return err
		}

		if err := s.reviews.Save(ctx, r); err != nil {
			return err
		}
		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}

		uow.RegisterNew(r)
		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toReviewResponse(r), nil
}

// GetShopReviews lists a shop's reviews, newest first.
func (s *ApplicationService) GetShopReviews(ctx context.Context, shopID string, query ReviewQuery) (*PagedReviewsResponse, error) {
	page := review.PageRequest{Page: query.Page, Limit: query.Limit}
	if page.Page < 1 {
		page.Page = 1
	}
	if page.Limit < 1 {
		page.Limit = 10
	}

	result, err := s.reviews.FindByShop(ctx, shopID, page)
	if err != nil {
		return nil, err
	}
	// A request past the end re-runs on the last page so the labeled page
	// matches the returned rows.
	if last := lastPage(result.Total, page.Limit); last > 0 && page.Page > last {
		page.Page = last
		if result, err = s.reviews.FindByShop(ctx, shopID, page); err != nil {
			return nil, err
		}
	}

	responses := make([]*ReviewResponse, len(result.Reviews))
	for i, r := range result.Reviews {
		responses[i] = toReviewResponse(r)
	}

	return &PagedReviewsResponse{
		Reviews:    responses,
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      result.Total,
		TotalPages: lastPage(result.Total, page.Limit),
	}, nil
}

func lastPage(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func toReviewResponse(r *review.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:         r.ID(),
		OrderID:    r.OrderID(),
		CustomerID: r.CustomerID(),
		ShopID:     r.ShopID(),
		Rating:     r.Rating(),
		Comment:    r.Comment(),
		CreatedAt:  r.CreatedAt(),
	}
}
