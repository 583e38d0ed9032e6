package order

import (
	"time"

	"foody/domain/shared"
)

// OrderPlacedEvent raised when an order is created from a cart group.
type OrderPlacedEvent struct {
	orderID    string
	customerID string
	shopID     string
	total      shared.Money
	occurredOn time.Time
}

func NewOrderPlacedEvent(orderID, customerID, shopID string, total shared.Money) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		orderID:    orderID,
		customerID: customerID,
		shopID:     shopID,
		total:      total,
		occurredOn: time.Now(),
	}
}

func (e *OrderPlacedEvent) EventName() string      { return "order.placed" }
func (e *OrderPlacedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderPlacedEvent) GetAggregateID() string { return e.orderID }
func (e *OrderPlacedEvent) OrderID() string        { return e.orderID }
func (e *OrderPlacedEvent) CustomerID() string     { return e.customerID }
func (e *OrderPlacedEvent) ShopID() string         { return e.shopID }
func (e *OrderPlacedEvent) Total() shared.Money    { return e.total }

// OrderDeliveredEvent raised when the assigned shipper confirms delivery.
// The stats worker folds it into shop delivered counters and product sold
// counters.
type OrderDeliveredEvent struct {
	orderID    string
	shopID     string
	quantities map[string]int // productID -> delivered quantity
	occurredOn time.Time
}

func NewOrderDeliveredEvent(orderID, shopID string, quantities map[string]int) *OrderDeliveredEvent {
	return &OrderDeliveredEvent{
		orderID:    orderID,
		shopID:     shopID,
		quantities: quantities,
		occurredOn: time.Now(),
	}
}

func (e *OrderDeliveredEvent) EventName() string      { return "order.delivered" }
func (e *OrderDeliveredEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderDeliveredEvent) GetAggregateID() string { return e.orderID }
func (e *OrderDeliveredEvent) OrderID() string        { return e.orderID }
func (e *OrderDeliveredEvent) ShopID() string         { return e.shopID }

// Quantities returns a copy of the delivered product quantities.
func (e *OrderDeliveredEvent) Quantities() map[string]int {
	quantities := make(map[string]int, len(e.quantities))
	for productID, quantity := range e.quantities {
		quantities[productID] = quantity
	}
	return quantities
}

// OrderCancelledEvent raised when either party cancels the order.
type OrderCancelledEvent struct {
	orderID     string
	shopID      string
	cancelledBy string
	reason      string
	occurredOn  time.Time
}

func NewOrderCancelledEvent(orderID, shopID, cancelledBy, reason string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		orderID:     orderID,
		shopID:      shopID,
		cancelledBy: cancelledBy,
		reason:      reason,
		occurredOn:  time.Now(),
	}
}

func (e *OrderCancelledEvent) EventName() string      { return "order.cancelled" }
func (e *OrderCancelledEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderCancelledEvent) GetAggregateID() string { return e.orderID }
func (e *OrderCancelledEvent) OrderID() string        { return e.orderID }
func (e *OrderCancelledEvent) ShopID() string         { return e.shopID }
func (e *OrderCancelledEvent) CancelledBy() string    { return e.cancelledBy }
func (e *OrderCancelledEvent) Reason() string         { return e.reason }
