package mocks

import (
	"context"
	"sort"
	"sync"

	"foody/domain/review"
)

// ReviewRepository in-memory review store. Insert-only, like the MySQL
// implementation.
type ReviewRepository struct {
	mu      sync.RWMutex
	reviews map[string]*review.Review
	byOrder map[string]string
}

// NewReviewRepository creates an empty in-memory review repository.
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{
		reviews: make(map[string]*review.Review),
		byOrder: make(map[string]string),
	}
}

// FindByID returns an isolated copy of the stored review.
func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*review.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.reviews[id]
	if !ok {
		return nil, review.NewReviewNotFoundError(id)
	}
	return cloneReview(stored), nil
}

// FindByOrderID returns the review left on an order, if any.
func (r *ReviewRepository) FindByOrderID(ctx context.Context, orderID string) (*review.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviewID, ok := r.byOrder[orderID]
	if !ok {
		return nil, review.NewReviewNotFoundError(orderID)
	}
	return cloneReview(r.reviews[reviewID]), nil
}

// FindByShop lists a shop's reviews, newest first.
func (r *ReviewRepository) FindByShop(ctx context.Context, shopID string, page review.PageRequest) (*review.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*review.Review
	for _, stored := range r.reviews {
		if stored.ShopID() == shopID {
			matched = append(matched, stored)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt().Equal(matched[j].CreatedAt()) {
			return matched[i].ID() > matched[j].ID()
		}
		return matched[i].CreatedAt().After(matched[j].CreatedAt())
	})

	total := int64(len(matched))
	offset := page.Offset()
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + page.Limit
	if page.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}

	reviews := make([]*review.Review, 0, end-offset)
	for _, stored := range matched[offset:end] {
		reviews = append(reviews, cloneReview(stored))
	}
	return &review.Page{Reviews: reviews, Total: total}, nil
}

// Save inserts a new review. A second review on the same order is rejected.
func (r *ReviewRepository) Save(ctx context.Context, rev *review.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byOrder[rev.OrderID()]; exists {
		return review.NewOrderNotReviewableError(rev.OrderID())
	}
	r.reviews[rev.ID()] = cloneReview(rev)
	r.byOrder[rev.OrderID()] = rev.ID()
	return nil
}

type reviewState struct {
	reviews map[string]*review.Review
	byOrder map[string]string
}

func (r *ReviewRepository) snapshot() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state := reviewState{
		reviews: make(map[string]*review.Review, len(r.reviews)),
		byOrder: make(map[string]string, len(r.byOrder)),
	}
	for id, rev := range r.reviews {
		state.reviews[id] = cloneReview(rev)
	}
	for orderID, reviewID := range r.byOrder {
		state.byOrder[orderID] = reviewID
	}
	return state
}

func (r *ReviewRepository) restore(snapshot any) {
	state := snapshot.(reviewState)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = state.reviews
	r.byOrder = state.byOrder
}

func cloneReview(rev *review.Review) *review.Review {
	return review.RebuildFromDTO(review.ReconstructionDTO{
		ID:         rev.ID(),
		OrderID:    rev.OrderID(),
		CustomerID: rev.CustomerID(),
		ShopID:     rev.ShopID(),
		Rating:     rev.Rating(),
		Comment:    rev.Comment(),
		ProductIDs: rev.ProductIDs(),
		CreatedAt:  rev.CreatedAt(),
	})
}

var _ review.Repository = (*ReviewRepository)(nil)
