package review

import (
	"time"

	"github.com/google/uuid"

	"foody/domain/shared"
)

// Review is a customer rating left on a delivered order. One review per
// order; the link back is stored on the order itself.
type Review struct {
	id         string
	orderID    string
	customerID string
	shopID     string
	rating     int
	comment    string
	productIDs []string
	createdAt  time.Time

	events []shared.DomainEvent
	isNew  bool
}

const (
	MinRating = 1
	MaxRating = 5
)

// NewReview creates a review for a delivered order. Rating must be within
// [1, 5]; product IDs are the order's line items, used for per-product
// rating recomputation.
func NewReview(orderID, customerID, shopID string, rating int, comment string, productIDs []string) (*Review, error) {
	if orderID == "" {
		return nil, shared.NewValidationError("review", "orderId", "orderId is required")
	}
	if customerID == "" {
		return nil, shared.NewValidationError("review", "customerId", "customerId is required")
	}
	if rating < MinRating || rating > MaxRating {
		return nil, NewInvalidRatingError(rating)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	r := &Review{
		id:         id.String(),
		orderID:    orderID,
		customerID: customerID,
		shopID:     shopID,
		rating:     rating,
		comment:    comment,
		productIDs: append([]string(nil), productIDs...),
		createdAt:  time.Now(),
		isNew:      true,
	}
	r.events = append(r.events, NewReviewCreatedEvent(r.id, r.shopID, r.rating, r.productIDs))
	return r, nil
}

// ReconstructionDTO carries persisted state back into the aggregate.
type ReconstructionDTO struct {
	ID         string
	OrderID    string
	CustomerID string
	ShopID     string
	Rating     int
	Comment    string
	ProductIDs []string
	CreatedAt  time.Time
}

func RebuildFromDTO(dto ReconstructionDTO) *Review {
	return &Review{
		id:         dto.ID,
		orderID:    dto.OrderID,
		customerID: dto.CustomerID,
		shopID:     dto.ShopID,
		rating:     dto.Rating,
		comment:    dto.Comment,
		productIDs: append([]string(nil), dto.ProductIDs...),
		createdAt:  dto.CreatedAt,
	}
}

func (r *Review) ID() string         { return r.id }
func (r *Review) OrderID() string    { return r.orderID }
func (r *Review) CustomerID() string { return r.customerID }
func (r *Review) ShopID() string     { return r.shopID }
func (r *Review) Rating() int        { return r.rating }
func (r *Review) Comment() string    { return r.comment }
func (r *Review) CreatedAt() time.Time {
	return r.createdAt
}
func (r *Review) IsNew() bool { return r.isNew }

// Version satisfies shared.AggregateRoot. Reviews are immutable once
// written, so there is nothing to version.
func (r *Review) Version() int { return 0 }

func (r *Review) ProductIDs() []string {
	return append([]string(nil), r.productIDs...)
}

func (r *Review) PullEvents() []shared.DomainEvent {
	events := r.events
	r.events = nil
	return events
}

// Compile-time check that Review implements AggregateRoot.
var _ shared.AggregateRoot = (*Review)(nil)
