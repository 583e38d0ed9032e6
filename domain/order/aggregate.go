/*
Package order - the order lifecycle state machine.

An order is created exclusively from one shop's cart group and then moves
through PENDING → CONFIRMED → PREPARING → READY → SHIPPING → DELIVERED, with
CANCELLED reachable from PENDING, CONFIRMED or PREPARING. DELIVERED and
CANCELLED are terminal: once reached, the only mutations still allowed are
review linkage and payout bookkeeping.

Each transition method enforces the required prior status and, for shipper
operations, the assignment invariant. Role and ownership checks against the
calling actor live in the application layer, which resolves the shop owner;
the aggregate gates on what it owns: status and shipperID.
*/
package order

import (
	"fmt"
	"time"

	"foody/domain/shared"

	"github.com/google/uuid"
)

// Status order lifecycle status.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusPreparing Status = "PREPARING"
	StatusReady     Status = "READY"
	StatusShipping  Status = "SHIPPING"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// IsTerminal reports whether no further transition is legal.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// ParseStatus returns the Status for a raw query value, false when unknown.
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
		StatusShipping, StatusDelivered, StatusCancelled:
		return Status(raw), true
	}
	return "", false
}

// PaymentStatus settlement state of the order.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

// PaymentMethod how the customer pays.
type PaymentMethod string

const (
	PaymentCOD   PaymentMethod = "COD"
	PaymentMomo  PaymentMethod = "MOMO"
	PaymentVNPay PaymentMethod = "VNPAY"
)

// ParsePaymentMethod returns the PaymentMethod for a raw value, false when unknown.
func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	switch PaymentMethod(raw) {
	case PaymentCOD, PaymentMomo, PaymentVNPay:
		return PaymentMethod(raw), true
	}
	return "", false
}

// CancelledBy which party cancelled the order.
type CancelledBy string

const (
	CancelledByCustomer CancelledBy = "CUSTOMER"
	CancelledByOwner    CancelledBy = "OWNER"
)

// DeliveryAddress snapshot of where the order goes. Copied at creation and
// never resolved against a live address book afterwards.
type DeliveryAddress struct {
	Label       string
	FullAddress string
	Building    string
	Room        string
	Note        string
}

// Order aggregate root.
type Order struct {
	id          string
	orderNumber string
	customerID  string
	shopID      string
	shopName    string

	// shipperID is nil until a shipper accepts the order. The persistence
	// layer must write the column explicitly as NULL on creation: the
	// available-orders query filters on shipper_id IS NULL, so the field
	// has to exist from the first write.
	shipperID *string

	items    []Item
	subtotal shared.Money
	shipFee  shared.Money
	discount shared.Money
	total    shared.Money

	status        Status
	paymentStatus PaymentStatus
	paymentMethod PaymentMethod
	voucherCode   string

	deliveryAddress DeliveryAddress

	cancelReason string
	cancelledBy  CancelledBy
	cancelledAt  *time.Time

	confirmedAt *time.Time
	preparingAt *time.Time
	readyAt     *time.Time
	shippingAt  *time.Time
	deliveredAt *time.Time

	reviewID   *string
	reviewedAt *time.Time

	paidOut   bool
	paidOutAt *time.Time

	version   int
	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
	isNew  bool
}

// Item one order line. All fields are snapshots frozen at order creation.
type Item struct {
	productID   string
	productName string
	image       string
	quantity    int
	unitPrice   shared.Money
	subtotal    shared.Money
}

// ItemRequest input for one line item at order creation.
type ItemRequest struct {
	ProductID   string
	ProductName string
	Image       string
	Quantity    int
	UnitPrice   shared.Money
}

// PostOptions input for the NewOrder factory.
type PostOptions struct {
	CustomerID      string
	ShopID          string
	ShopName        string
	Items           []ItemRequest
	ShipFee         shared.Money
	Discount        shared.Money
	VoucherCode     string
	PaymentMethod   PaymentMethod
	DeliveryAddress DeliveryAddress
}

// NewOrder creates an order in PENDING. This is the only entry point for
// creating orders: the application layer always reaches it through the atomic
// cart-to-order transition.
func NewOrder(opts PostOptions) (*Order, error) {
	if opts.CustomerID == "" {
		return nil, shared.NewValidationError("order", "customerId", "customer id is required")
	}
	if opts.ShopID == "" {
		return nil, shared.NewValidationError("order", "shopId", "shop id is required")
	}
	if len(opts.Items) == 0 {
		return nil, ErrEmptyItems
	}

	items := make([]Item, len(opts.Items))
	subtotal := shared.VND(0)
	for i, req := range opts.Items {
		if req.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		lineSubtotal, err := req.UnitPrice.Multiply(req.Quantity)
		if err != nil {
			return nil, err
		}

		items[i] = Item{
			productID:   req.ProductID,
			productName: req.ProductName,
			image:       req.Image,
			quantity:    req.Quantity,
			unitPrice:   req.UnitPrice,
			subtotal:    *lineSubtotal,
		}

		sum, err := subtotal.Add(*lineSubtotal)
		if err != nil {
			return nil, err
		}
		subtotal = *sum
	}

	withFee, err := subtotal.Add(opts.ShipFee)
	if err != nil {
		return nil, err
	}
	total, err := withFee.Subtract(opts.Discount)
	if err != nil {
		return nil, err
	}

	orderID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	now := time.Now()
	o := &Order{
		id:              orderID.String(),
		orderNumber:     NewOrderNumber(now),
		customerID:      opts.CustomerID,
		shopID:          opts.ShopID,
		shopName:        opts.ShopName,
		shipperID:       nil,
		items:           items,
		subtotal:        subtotal,
		shipFee:         opts.ShipFee,
		discount:        opts.Discount,
		total:           total.FloorZero(),
		status:          StatusPending,
		paymentStatus:   PaymentUnpaid,
		paymentMethod:   opts.PaymentMethod,
		voucherCode:     opts.VoucherCode,
		deliveryAddress: opts.DeliveryAddress,
		version:         0,
		createdAt:       now,
		updatedAt:       now,
		events:          make([]shared.DomainEvent, 0),
		isNew:           true,
	}

	o.events = append(o.events, NewOrderPlacedEvent(o.id, o.customerID, o.shopID, o.total))
	return o, nil
}

// ============================================================================
// Transition methods
// ============================================================================

// Confirm PENDING → CONFIRMED. Owner operation.
func (o *Order) Confirm() error {
	if o.status != StatusPending {
		return NewInvalidTransitionError("confirm", o.status)
	}

	now := time.Now()
	o.status = StatusConfirmed
	o.confirmedAt = &now
	o.updatedAt = now
	return nil
}

// MarkPreparing CONFIRMED → PREPARING. Owner operation.
func (o *Order) MarkPreparing() error {
	if o.status != StatusConfirmed {
		return NewInvalidTransitionError("mark preparing", o.status)
	}

	now := time.Now()
	o.status = StatusPreparing
	o.preparingAt = &now
	o.updatedAt = now
	return nil
}

// MarkReady PREPARING → READY. Owner operation.
func (o *Order) MarkReady() error {
	if o.status != StatusPreparing {
		return NewInvalidTransitionError("mark ready", o.status)
	}

	now := time.Now()
	o.status = StatusReady
	o.readyAt = &now
	o.updatedAt = now
	return nil
}

// CancelByCustomer → CANCELLED from PENDING, CONFIRMED or PREPARING.
func (o *Order) CancelByCustomer(reason string) error {
	switch o.status {
	case StatusPending, StatusConfirmed, StatusPreparing:
	default:
		return NewInvalidTransitionError("cancel", o.status)
	}
	o.cancel(reason, CancelledByCustomer)
	return nil
}

// CancelByOwner → CANCELLED from CONFIRMED or PREPARING only. An owner who
// does not want a PENDING order simply never confirms it.
func (o *Order) CancelByOwner(reason string) error {
	switch o.status {
	case StatusConfirmed, StatusPreparing:
	default:
		return NewInvalidTransitionError("cancel", o.status)
	}
	o.cancel(reason, CancelledByOwner)
	return nil
}

func (o *Order) cancel(reason string, by CancelledBy) {
	now := time.Now()
	o.status = StatusCancelled
	o.cancelReason = reason
	o.cancelledBy = by
	o.cancelledAt = &now
	o.updatedAt = now
	o.events = append(o.events, NewOrderCancelledEvent(o.id, o.shopID, string(by), reason))
}

// Accept READY + unassigned → SHIPPING, binding the shipper. There is no
// intermediate ASSIGNED state; acceptance and the shipping transition are
// one step. The assignment race between two shippers is resolved by the
// repository's optimistic lock: the loser's save fails, and on reload the
// order is assigned, yielding ErrAlreadyAssigned. The assignment check
// therefore runs first: an assigned order reports "already assigned" no
// matter what status it has advanced to.
func (o *Order) Accept(shipperID string) error {
	if o.shipperID != nil {
		return NewAlreadyAssignedError(o.id)
	}
	if o.status != StatusReady {
		return NewInvalidTransitionError("accept", o.status)
	}

	now := time.Now()
	o.shipperID = &shipperID
	o.status = StatusShipping
	if o.shippingAt == nil {
		o.shippingAt = &now
	}
	o.updatedAt = now
	return nil
}

// MarkShipping re-confirms the shipping transition for the assigned shipper.
// Accept already lands on SHIPPING, so this is idempotent in practice; the
// operation is kept for API symmetry with the other transitions.
func (o *Order) MarkShipping(shipperID string) error {
	if o.shipperID == nil || *o.shipperID != shipperID {
		return NewNotAssignedShipperError(o.id)
	}
	switch o.status {
	case StatusShipping, StatusReady:
	default:
		return NewInvalidTransitionError("mark shipping", o.status)
	}

	now := time.Now()
	o.status = StatusShipping
	if o.shippingAt == nil {
		o.shippingAt = &now
	}
	o.updatedAt = now
	return nil
}

// MarkDelivered SHIPPING → DELIVERED by the assigned shipper. Delivery
// confirmation settles COD payments: the shipper collected the cash.
func (o *Order) MarkDelivered(shipperID string) error {
	if o.shipperID == nil || *o.shipperID != shipperID {
		return NewNotAssignedShipperError(o.id)
	}
	if o.status != StatusShipping {
		return NewInvalidTransitionError("mark delivered", o.status)
	}

	now := time.Now()
	o.status = StatusDelivered
	o.deliveredAt = &now
	if o.paymentMethod == PaymentCOD {
		o.paymentStatus = PaymentPaid
	}
	o.updatedAt = now
	o.events = append(o.events, NewOrderDeliveredEvent(o.id, o.shopID, o.itemQuantities()))
	return nil
}

// MarkPaid records a successful gateway callback for online payments.
func (o *Order) MarkPaid() error {
	if o.paymentStatus == PaymentPaid {
		return nil
	}
	if o.status == StatusCancelled {
		return NewInvalidTransitionError("mark paid", o.status)
	}
	o.paymentStatus = PaymentPaid
	o.updatedAt = time.Now()
	return nil
}

// LinkReview attaches a review to a delivered order. Exactly one review
// per order.
func (o *Order) LinkReview(reviewID string) error {
	if o.status != StatusDelivered {
		return NewInvalidTransitionError("review", o.status)
	}
	if o.reviewID != nil {
		return ErrAlreadyReviewed
	}

	now := time.Now()
	o.reviewID = &reviewID
	o.reviewedAt = &now
	o.updatedAt = now
	return nil
}

// MarkPaidOut records the shop payout for a delivered order.
func (o *Order) MarkPaidOut() error {
	if o.status != StatusDelivered {
		return NewInvalidTransitionError("pay out", o.status)
	}
	if o.paidOut {
		return nil
	}

	now := time.Now()
	o.paidOut = true
	o.paidOutAt = &now
	o.updatedAt = now
	return nil
}

// IncrementVersionForSave is called by the repository after a successful save.
func (o *Order) IncrementVersionForSave() {
	o.version++
}

func (o *Order) itemQuantities() map[string]int {
	quantities := make(map[string]int, len(o.items))
	for _, item := range o.items {
		quantities[item.productID] += item.quantity
	}
	return quantities
}

// ============================================================================
// Getters
// ============================================================================

func (o *Order) ID() string          { return o.id }
func (o *Order) OrderNumber() string { return o.orderNumber }
func (o *Order) CustomerID() string  { return o.customerID }
func (o *Order) ShopID() string      { return o.shopID }
func (o *Order) ShopName() string    { return o.shopName }

// ShipperID returns nil while unassigned.
func (o *Order) ShipperID() *string { return o.shipperID }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Subtotal() shared.Money              { return o.subtotal }
func (o *Order) ShipFee() shared.Money               { return o.shipFee }
func (o *Order) Discount() shared.Money              { return o.discount }
func (o *Order) Total() shared.Money                 { return o.total }
func (o *Order) Status() Status                      { return o.status }
func (o *Order) PaymentStatus() PaymentStatus        { return o.paymentStatus }
func (o *Order) PaymentMethod() PaymentMethod        { return o.paymentMethod }
func (o *Order) VoucherCode() string                 { return o.voucherCode }
func (o *Order) DeliveryAddress() DeliveryAddress    { return o.deliveryAddress }
func (o *Order) CancelReason() string                { return o.cancelReason }
func (o *Order) CancelledBy() CancelledBy            { return o.cancelledBy }
func (o *Order) CancelledAt() *time.Time             { return o.cancelledAt }
func (o *Order) ConfirmedAt() *time.Time             { return o.confirmedAt }
func (o *Order) PreparingAt() *time.Time             { return o.preparingAt }
func (o *Order) ReadyAt() *time.Time                 { return o.readyAt }
func (o *Order) ShippingAt() *time.Time              { return o.shippingAt }
func (o *Order) DeliveredAt() *time.Time             { return o.deliveredAt }
func (o *Order) ReviewID() *string                   { return o.reviewID }
func (o *Order) ReviewedAt() *time.Time              { return o.reviewedAt }
func (o *Order) PaidOut() bool                       { return o.paidOut }
func (o *Order) PaidOutAt() *time.Time               { return o.paidOutAt }
func (o *Order) Version() int                        { return o.version }
func (o *Order) CreatedAt() time.Time                { return o.createdAt }
func (o *Order) UpdatedAt() time.Time                { return o.updatedAt }
func (o *Order) IsNew() bool                         { return o.isNew }

// ClearDirtyTracking is called by the repository after a successful save.
func (o *Order) ClearDirtyTracking() { o.isNew = false }

// PullEvents returns and clears the recorded domain events.
func (o *Order) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(o.events))
	copy(events, o.events)
	o.events = make([]shared.DomainEvent, 0)
	return events
}

// Item getters.

func (item Item) ProductID() string       { return item.productID }
func (item Item) ProductName() string     { return item.productName }
func (item Item) Image() string           { return item.image }
func (item Item) Quantity() int           { return item.quantity }
func (item Item) UnitPrice() shared.Money { return item.unitPrice }
func (item Item) Subtotal() shared.Money  { return item.subtotal }

// Compile-time check that Order implements AggregateRoot.
var _ shared.AggregateRoot = (*Order)(nil)
