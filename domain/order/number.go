package order

import (
	"fmt"
	"math/rand"
	"time"
)

// NewOrderNumber derives a human-readable order number from the creation
// time plus a random suffix, e.g. "OD250901143205-8317". Uniqueness is not
// guaranteed by construction; the order id remains the identity, the number
// exists for receipts and support conversations.
func NewOrderNumber(at time.Time) string {
	return fmt.Sprintf("OD%s-%04d", at.Format("060102150405"), rand.Intn(10000))
}

// RefreshOrderNumber draws a new order number. The storage layer calls this
// when an insert collides on the unique number index.
func (o *Order) RefreshOrderNumber() {
	o.orderNumber = NewOrderNumber(time.Now())
}
