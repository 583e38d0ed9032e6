package mysql

import (
	"context"
	"encoding/json"
	"fmt"

	"foody/domain/catalog"
	"foody/infrastructure/persistence/mysql/po"
	"foody/pkg/logger"

	"go.uber.org/zap"
)

// StatsProjector folds outbox events into catalog aggregates:
//
//	order.delivered  -> shop delivered counter, product sold counters
//	review.created   -> shop and product rating aggregates, recomputed
//	                    from the reviews table
//
// Projections are idempotent only per event; the outbox guarantees
// at-least-once delivery, so a crash between Handle and MarkEventProcessed
// can double-count an increment. Acceptable for display counters.
type StatsProjector struct {
	stats   catalog.StatsWriter
	reviews *ReviewRepository
}

// NewStatsProjector creates the projector.
func NewStatsProjector(stats catalog.StatsWriter, reviews *ReviewRepository) *StatsProjector {
	return &StatsProjector{stats: stats, reviews: reviews}
}

// Handle applies one serialized event.
func (p *StatsProjector) Handle(ctx context.Context, eventType, payload string) error {
	switch eventType {
	case "order.delivered":
		return p.handleOrderDelivered(ctx, payload)
	case "review.created":
		return p.handleReviewCreated(ctx, payload)
	case "order.placed", "order.cancelled":
		// No projection yet; drained so the outbox does not grow unbounded.
		return nil
	default:
		logger.Warn("Unknown outbox event type", zap.String("event_type", eventType))
		return nil
	}
}

func (p *StatsProjector) handleOrderDelivered(ctx context.Context, payload string) error {
	var event po.OrderDeliveredPayload
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return fmt.Errorf("failed to decode order.delivered payload: %w", err)
	}

	if err := p.stats.IncrementShopDelivered(ctx, event.ShopID); err != nil {
		return err
	}
	for productID, quantity := range event.Quantities {
		if err := p.stats.IncrementProductSold(ctx, productID, quantity); err != nil {
			return err
		}
	}
	return nil
}

func (p *StatsProjector) handleReviewCreated(ctx context.Context, payload string) error {
	var event po.ReviewCreatedPayload
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return fmt.Errorf("failed to decode review.created payload: %w", err)
	}

	avg, count, err := p.reviews.ShopRatingAggregate(ctx, event.ShopID)
	if err != nil {
		return err
	}
	if err := p.stats.UpdateShopRating(ctx, event.ShopID, avg, count); err != nil {
		return err
	}

	for _, productID := range event.ProductIDs {
		avg, count, err := p.reviews.ProductRatingAggregate(ctx, productID)
		if err != nil {
			return err
		}
		if err := p.stats.UpdateProductRating(ctx, productID, avg, count); err != nil {
			return err
		}
	}
	return nil
}

var _ OutboxHandler = (*StatsProjector)(nil)
