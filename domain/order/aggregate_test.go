package order

import (
	"errors"
	"testing"

	"foody/domain/shared"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(PostOptions{
		CustomerID: "customer-1",
		ShopID:     "shop-1",
		ShopName:   "Pho 24",
		Items: []ItemRequest{
			{ProductID: "p1", ProductName: "Pho bo", Quantity: 2, UnitPrice: shared.VND(50000)},
			{ProductID: "p2", ProductName: "Tra da", Quantity: 1, UnitPrice: shared.VND(5000)},
		},
		ShipFee:       shared.VND(15000),
		Discount:      shared.VND(0),
		PaymentMethod: PaymentCOD,
	})
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}
	return o
}

// advance walks a fresh order to the given status.
func orderAt(t *testing.T, status Status) *Order {
	t.Helper()
	o := newTestOrder(t)
	steps := []struct {
		upTo Status
		do   func() error
	}{
		{StatusConfirmed, o.Confirm},
		{StatusPreparing, o.MarkPreparing},
		{StatusReady, o.MarkReady},
		{StatusShipping, func() error { return o.Accept("shipper-1") }},
		{StatusDelivered, func() error { return o.MarkDelivered("shipper-1") }},
	}
	for _, step := range steps {
		if o.Status() == status {
			return o
		}
		if err := step.do(); err != nil {
			t.Fatalf("advancing to %s: %v", status, err)
		}
	}
	if o.Status() != status {
		t.Fatalf("cannot build order at status %s", status)
	}
	return o
}

func TestNewOrderTotals(t *testing.T) {
	o := newTestOrder(t)

	if o.Subtotal().Amount() != 105000 {
		t.Errorf("expected subtotal 105000, got %d", o.Subtotal().Amount())
	}
	if o.Total().Amount() != 120000 {
		t.Errorf("expected total 120000, got %d", o.Total().Amount())
	}
	if o.Status() != StatusPending {
		t.Errorf("expected PENDING, got %s", o.Status())
	}
	if o.PaymentStatus() != PaymentUnpaid {
		t.Errorf("expected UNPAID, got %s", o.PaymentStatus())
	}
	if o.ShipperID() != nil {
		t.Error("new order must have no shipper assigned")
	}

	events := o.PullEvents()
	if len(events) != 1 || events[0].EventName() != "order.placed" {
		t.Errorf("expected one order.placed event, got %v", events)
	}
}

func TestNewOrderDiscountFloorsAtZero(t *testing.T) {
	o, err := NewOrder(PostOptions{
		CustomerID: "customer-1",
		ShopID:     "shop-1",
		Items: []ItemRequest{
			{ProductID: "p1", Quantity: 1, UnitPrice: shared.VND(20000)},
		},
		ShipFee:       shared.VND(0),
		Discount:      shared.VND(50000),
		PaymentMethod: PaymentCOD,
	})
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}
	if o.Total().Amount() != 0 {
		t.Errorf("total must floor at zero, got %d", o.Total().Amount())
	}
}

func TestNewOrderValidation(t *testing.T) {
	testCases := []struct {
		name    string
		opts    PostOptions
		wantErr error
	}{
		{
			name: "missing customer",
			opts: PostOptions{
				ShopID: "shop-1",
				Items:  []ItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: shared.VND(1000)}},
			},
			wantErr: shared.ErrInvalidInput,
		},
		{
			name: "missing shop",
			opts: PostOptions{
				CustomerID: "customer-1",
				Items:      []ItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: shared.VND(1000)}},
			},
			wantErr: shared.ErrInvalidInput,
		},
		{
			name:    "no items",
			opts:    PostOptions{CustomerID: "customer-1", ShopID: "shop-1"},
			wantErr: ErrEmptyItems,
		},
		{
			name: "zero quantity",
			opts: PostOptions{
				CustomerID: "customer-1",
				ShopID:     "shop-1",
				Items:      []ItemRequest{{ProductID: "p1", Quantity: 0, UnitPrice: shared.VND(1000)}},
			},
			wantErr: ErrInvalidQuantity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOrder(tc.opts)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestTransitionTable(t *testing.T) {
	type op struct {
		name string
		run  func(o *Order) error
	}
	ops := []op{
		{"confirm", func(o *Order) error { return o.Confirm() }},
		{"markPreparing", func(o *Order) error { return o.MarkPreparing() }},
		{"markReady", func(o *Order) error { return o.MarkReady() }},
		{"cancelByCustomer", func(o *Order) error { return o.CancelByCustomer("changed my mind") }},
		{"cancelByOwner", func(o *Order) error { return o.CancelByOwner("out of stock") }},
		{"accept", func(o *Order) error { return o.Accept("shipper-2") }},
		{"markDelivered", func(o *Order) error { return o.MarkDelivered("shipper-1") }},
	}

	// allowed[status] lists the operations legal at that status.
	allowed := map[Status]map[string]bool{
		StatusPending:   {"confirm": true, "cancelByCustomer": true},
		StatusConfirmed: {"markPreparing": true, "cancelByCustomer": true, "cancelByOwner": true},
		StatusPreparing: {"markReady": true, "cancelByCustomer": true, "cancelByOwner": true},
		StatusReady:     {},
		StatusShipping:  {"markDelivered": true},
		StatusDelivered: {},
	}

	for status, legal := range allowed {
		for _, operation := range ops {
			t.Run(string(status)+"/"+operation.name, func(t *testing.T) {
				o := orderAt(t, status)
				if status == StatusReady && operation.name == "accept" {
					// Accept on READY is the happy path, covered separately.
					return
				}

				before := o.Status()
				err := operation.run(o)
				if legal[operation.name] {
					if err != nil {
						t.Fatalf("expected %s to succeed at %s, got %v", operation.name, status, err)
					}
					return
				}

				if err == nil {
					t.Fatalf("expected %s to fail at %s", operation.name, status)
				}
				if o.Status() != before {
					t.Errorf("illegal transition must not mutate status: %s -> %s", before, o.Status())
				}
			})
		}
	}
}

func TestCancelledIsTerminal(t *testing.T) {
	o := newTestOrder(t)
	if err := o.CancelByCustomer("changed my mind"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	attempts := []struct {
		name string
		run  func() error
	}{
		{"confirm", o.Confirm},
		{"markPreparing", o.MarkPreparing},
		{"markReady", o.MarkReady},
		{"cancelAgain", func() error { return o.CancelByCustomer("again") }},
		{"accept", func() error { return o.Accept("shipper-1") }},
		{"markPaid", o.MarkPaid},
	}
	for _, attempt := range attempts {
		if err := attempt.run(); !errors.Is(err, ErrInvalidStateTransition) {
			t.Errorf("%s on a cancelled order must fail, got %v", attempt.name, err)
		}
	}

	if o.Status() != StatusCancelled {
		t.Errorf("status must stay CANCELLED, got %s", o.Status())
	}
	if o.CancelReason() != "changed my mind" {
		t.Errorf("cancel fields must not be overwritten, got %q", o.CancelReason())
	}
	if o.PaymentStatus() != PaymentUnpaid {
		t.Errorf("payment must stay UNPAID, got %s", o.PaymentStatus())
	}
}

func TestAcceptBindsShipperAndShips(t *testing.T) {
	o := orderAt(t, StatusReady)

	if err := o.Accept("shipper-1"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if o.Status() != StatusShipping {
		t.Errorf("expected SHIPPING, got %s", o.Status())
	}
	if o.ShipperID() == nil || *o.ShipperID() != "shipper-1" {
		t.Errorf("expected shipper-1 assigned, got %v", o.ShipperID())
	}
	if o.ShippingAt() == nil {
		t.Error("shippingAt must be set on accept")
	}

	if err := o.Accept("shipper-2"); !errors.Is(err, ErrAlreadyAssigned) {
		t.Errorf("second accept must report already assigned, got %v", err)
	}
	if *o.ShipperID() != "shipper-1" {
		t.Errorf("losing accept must not steal the assignment, got %v", *o.ShipperID())
	}
}

func TestMarkShipping(t *testing.T) {
	o := orderAt(t, StatusShipping)

	if err := o.MarkShipping("shipper-1"); err != nil {
		t.Errorf("markShipping by the assigned shipper must be idempotent, got %v", err)
	}
	if err := o.MarkShipping("shipper-2"); !errors.Is(err, ErrNotAssignedShipper) {
		t.Errorf("expected ErrNotAssignedShipper for foreign shipper, got %v", err)
	}

	unassigned := orderAt(t, StatusReady)
	if err := unassigned.MarkShipping("shipper-1"); !errors.Is(err, ErrNotAssignedShipper) {
		t.Errorf("expected ErrNotAssignedShipper while unassigned, got %v", err)
	}
}

func TestMarkDeliveredSettlesCOD(t *testing.T) {
	o := orderAt(t, StatusShipping)
	o.PullEvents()

	if err := o.MarkDelivered("shipper-2"); !errors.Is(err, ErrNotAssignedShipper) {
		t.Fatalf("foreign shipper must not deliver, got %v", err)
	}
	if err := o.MarkDelivered("shipper-1"); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}

	if o.Status() != StatusDelivered {
		t.Errorf("expected DELIVERED, got %s", o.Status())
	}
	if o.PaymentStatus() != PaymentPaid {
		t.Errorf("COD order must be PAID on delivery, got %s", o.PaymentStatus())
	}
	if o.DeliveredAt() == nil {
		t.Error("deliveredAt must be set")
	}

	events := o.PullEvents()
	if len(events) != 1 || events[0].EventName() != "order.delivered" {
		t.Fatalf("expected one order.delivered event, got %v", events)
	}
	delivered, ok := events[0].(*OrderDeliveredEvent)
	if !ok {
		t.Fatalf("expected *OrderDeliveredEvent, got %T", events[0])
	}
	if delivered.Quantities()["p1"] != 2 || delivered.Quantities()["p2"] != 1 {
		t.Errorf("unexpected item quantities: %v", delivered.Quantities())
	}
}

func TestCancelRecordsActorAndReason(t *testing.T) {
	o := newTestOrder(t)
	o.PullEvents()

	if err := o.CancelByCustomer("ordered twice"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if o.CancelledBy() != CancelledByCustomer {
		t.Errorf("expected CUSTOMER, got %s", o.CancelledBy())
	}
	if o.CancelReason() != "ordered twice" {
		t.Errorf("unexpected reason %q", o.CancelReason())
	}
	if o.CancelledAt() == nil {
		t.Error("cancelledAt must be set")
	}

	events := o.PullEvents()
	if len(events) != 1 || events[0].EventName() != "order.cancelled" {
		t.Errorf("expected one order.cancelled event, got %v", events)
	}
}

func TestCancelByOwnerRequiresConfirmation(t *testing.T) {
	o := newTestOrder(t)
	if err := o.CancelByOwner("no"); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("owner must not cancel a PENDING order, got %v", err)
	}
}

func TestLinkReviewOnce(t *testing.T) {
	o := orderAt(t, StatusShipping)
	if err := o.LinkReview("review-1"); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("review before delivery must fail, got %v", err)
	}

	if err := o.MarkDelivered("shipper-1"); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if err := o.LinkReview("review-1"); err != nil {
		t.Fatalf("first review link failed: %v", err)
	}
	if o.ReviewID() == nil || *o.ReviewID() != "review-1" {
		t.Errorf("expected review-1 linked, got %v", o.ReviewID())
	}
	if err := o.LinkReview("review-2"); !errors.Is(err, ErrAlreadyReviewed) {
		t.Errorf("expected ErrAlreadyReviewed, got %v", err)
	}
}

func TestMarkPaid(t *testing.T) {
	o := newTestOrder(t)
	if err := o.MarkPaid(); err != nil {
		t.Fatalf("markPaid failed: %v", err)
	}
	if o.PaymentStatus() != PaymentPaid {
		t.Errorf("expected PAID, got %s", o.PaymentStatus())
	}
	if err := o.MarkPaid(); err != nil {
		t.Errorf("markPaid must be idempotent, got %v", err)
	}

	cancelled := newTestOrder(t)
	if err := cancelled.CancelByCustomer("x"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if err := cancelled.MarkPaid(); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("cancelled order must not be marked paid, got %v", err)
	}
}

func TestMarkPaidOut(t *testing.T) {
	o := orderAt(t, StatusDelivered)
	if err := o.MarkPaidOut(); err != nil {
		t.Fatalf("payout failed: %v", err)
	}
	if !o.PaidOut() || o.PaidOutAt() == nil {
		t.Error("payout flags must be set")
	}
	if err := o.MarkPaidOut(); err != nil {
		t.Errorf("payout must be idempotent, got %v", err)
	}

	pending := newTestOrder(t)
	if err := pending.MarkPaidOut(); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("only delivered orders pay out, got %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	if s, ok := ParseStatus("SHIPPING"); !ok || s != StatusShipping {
		t.Errorf("expected SHIPPING, got %v %v", s, ok)
	}
	if _, ok := ParseStatus("ASSIGNED"); ok {
		t.Error("ASSIGNED is not a status")
	}
}

func TestIsTerminal(t *testing.T) {
	testCases := []struct {
		status Status
		want   bool
	}{
		{StatusPending, false},
		{StatusReady, false},
		{StatusShipping, false},
		{StatusDelivered, true},
		{StatusCancelled, true},
	}
	for _, tc := range testCases {
		if got := tc.status.IsTerminal(); got != tc.want {
			t.Errorf("%s.IsTerminal() = %v, want %v", tc.status, got, tc.want)
		}
	}
}
