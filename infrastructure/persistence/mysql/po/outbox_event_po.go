package po

import (
	"encoding/json"
	"fmt"
	"time"

	"foody/domain/order"
	"foody/domain/review"
	"foody/domain/shared"

	"github.com/google/uuid"
)

// Outbox event status values.
const (
	EventStatusPending    = "PENDING"
	EventStatusProcessing = "PROCESSING"
	EventStatusProcessed  = "PROCESSED"
	EventStatusFailed     = "FAILED"
)

// OutboxEventPO transactional outbox row. Written in the same transaction
// as the aggregate change, consumed asynchronously by the stats worker.
type OutboxEventPO struct {
	ID          string     `gorm:"column:id;type:varchar(36);primaryKey"`
	AggregateID string     `gorm:"column:aggregate_id;type:varchar(36);not null;index:idx_outbox_aggregate"`
	EventType   string     `gorm:"column:event_type;type:varchar(64);not null"`
	Payload     string     `gorm:"column:payload;type:json;not null"`
	Status      string     `gorm:"column:status;type:varchar(16);not null;index:idx_outbox_status"`
	RetryCount  int        `gorm:"column:retry_count;not null;default:0"`
	LastError   string     `gorm:"column:last_error;type:varchar(1024)"`
	OccurredAt  time.Time  `gorm:"column:occurred_at;not null"`
	ProcessedAt *time.Time `gorm:"column:processed_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null"`
}

// TableName specifies the table name
func (OutboxEventPO) TableName() string {
	return "outbox_events"
}

// OrderPlacedPayload serialized form of order.placed.
type OrderPlacedPayload struct {
	OrderID    string `json:"orderId"`
	CustomerID string `json:"customerId"`
	ShopID     string `json:"shopId"`
	Total      int64  `json:"total"`
	Currency   string `json:"currency"`
}

// OrderDeliveredPayload serialized form of order.delivered.
type OrderDeliveredPayload struct {
	OrderID    string         `json:"orderId"`
	ShopID     string         `json:"shopId"`
	Quantities map[string]int `json:"quantities"`
}

// OrderCancelledPayload serialized form of order.cancelled.
type OrderCancelledPayload struct {
	OrderID     string `json:"orderId"`
	ShopID      string `json:"shopId"`
	CancelledBy string `json:"cancelledBy"`
	Reason      string `json:"reason"`
}

// ReviewCreatedPayload serialized form of review.created.
type ReviewCreatedPayload struct {
	ReviewID   string   `json:"reviewId"`
	ShopID     string   `json:"shopId"`
	Rating     int      `json:"rating"`
	ProductIDs []string `json:"productIds"`
}

// FromDomainEvent serializes a domain event into an outbox row.
func FromDomainEvent(event shared.DomainEvent) (*OutboxEventPO, error) {
	var payload any
	switch e := event.(type) {
	case *order.OrderPlacedEvent:
		payload = OrderPlacedPayload{
			OrderID:    e.OrderID(),
			CustomerID: e.CustomerID(),
			ShopID:     e.ShopID(),
			Total:      e.Total().Amount(),
			Currency:   e.Total().Currency(),
		}
	case *order.OrderDeliveredEvent:
		payload = OrderDeliveredPayload{
			OrderID:    e.OrderID(),
			ShopID:     e.ShopID(),
			Quantities: e.Quantities(),
		}
	case *order.OrderCancelledEvent:
		payload = OrderCancelledPayload{
			OrderID:     e.OrderID(),
			ShopID:      e.ShopID(),
			CancelledBy: e.CancelledBy(),
			Reason:      e.Reason(),
		}
	case *review.ReviewCreatedEvent:
		payload = ReviewCreatedPayload{
			ReviewID:   e.ReviewID(),
			ShopID:     e.ShopID(),
			Rating:     e.Rating(),
			ProductIDs: e.ProductIDs(),
		}
	default:
		return nil, fmt.Errorf("unknown event type: %s", event.EventName())
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	eventID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate event ID: %w", err)
	}

	return &OutboxEventPO{
		ID:          eventID.String(),
		AggregateID: event.GetAggregateID(),
		EventType:   event.EventName(),
		Payload:     string(data),
		Status:      EventStatusPending,
		OccurredAt:  event.OccurredOn(),
		CreatedAt:   time.Now(),
	}, nil
}
