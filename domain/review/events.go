package review

import "time"

// ReviewCreatedEvent raised when a customer reviews a delivered order.
// The stats worker folds it into shop and product rating aggregates.
type ReviewCreatedEvent struct {
	reviewID   string
	shopID     string
	rating     int
	productIDs []string
	occurredOn time.Time
}

func NewReviewCreatedEvent(reviewID, shopID string, rating int, productIDs []string) *ReviewCreatedEvent {
	return &ReviewCreatedEvent{
		reviewID:   reviewID,
		shopID:     shopID,
		rating:     rating,
		productIDs: append([]string(nil), productIDs...),
		occurredOn: time.Now(),
	}
}

func (e *ReviewCreatedEvent) EventName() string      { return "review.created" }
func (e *ReviewCreatedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *ReviewCreatedEvent) GetAggregateID() string { return e.reviewID }
func (e *ReviewCreatedEvent) ReviewID() string       { return e.reviewID }
func (e *ReviewCreatedEvent) ShopID() string         { return e.shopID }
func (e *ReviewCreatedEvent) Rating() int            { return e.rating }

func (e *ReviewCreatedEvent) ProductIDs() []string {
	return append([]string(nil), e.productIDs...)
}
