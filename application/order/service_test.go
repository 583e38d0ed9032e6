package order

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foody/domain/cart"
	"foody/domain/catalog"
	"foody/domain/order"
	"foody/domain/shared"
	"foody/infrastructure/persistence/mocks"
)

type orderFixture struct {
	service  *ApplicationService
	orders   *mocks.OrderRepository
	carts    *mocks.CartRepository
	catalog  *mocks.CatalogRepository
	vouchers *mocks.VoucherValidator
	uow      *mocks.UnitOfWork
}

func newOrderFixture() *orderFixture {
	orders := mocks.NewOrderRepository()
	carts := mocks.NewCartRepository()
	cat := mocks.NewCatalogRepository()
	vouchers := mocks.NewVoucherValidator()

	cat.AddShop(catalog.ShopReconstructionDTO{
		ID:              "shop-1",
		OwnerID:         "owner-1",
		Name:            "Pho 24",
		Open:            true,
		Status:          catalog.ShopStatusOpen,
		ShipFeePerOrder: shared.VND(15000),
	})
	cat.AddProduct(catalog.ProductReconstructionDTO{
		ID:        "p1",
		ShopID:    "shop-1",
		Name:      "Pho bo",
		Price:     shared.VND(50000),
		Available: true,
	})
	cat.AddProduct(catalog.ProductReconstructionDTO{
		ID:        "p2",
		ShopID:    "shop-1",
		Name:      "Tra da",
		Price:     shared.VND(5000),
		Available: true,
	})

	factory := mocks.NewUnitOfWorkFactory()
	uow := mocks.NewUnitOfWork(orders, carts)
	factory.Shared = uow

	return &orderFixture{
		service:  NewApplicationService(orders, carts, cat, mocks.NewShopReader(cat), vouchers, factory),
		orders:   orders,
		carts:    carts,
		catalog:  cat,
		vouchers: vouchers,
		uow:      uow,
	}
}

func (f *orderFixture) seedCart(t *testing.T, customerID string) {
	t.Helper()
	c := cart.NewCart(customerID)
	require.NoError(t, c.AddItem(cart.ProductSnapshot{
		ProductID: "p1", ShopID: "shop-1", Name: "Pho bo", Price: shared.VND(50000),
	}, 2))
	require.NoError(t, c.AddItem(cart.ProductSnapshot{
		ProductID: "p2", ShopID: "shop-1", Name: "Tra da", Price: shared.VND(5000),
	}, 1))
	require.NoError(t, f.carts.Save(context.Background(), c))
}

func asCustomer(id string) shared.Actor { return shared.Actor{ID: id, Role: shared.RoleCustomer} }
func asOwner(id string) shared.Actor    { return shared.Actor{ID: id, Role: shared.RoleOwner} }
func asShipper(id string) shared.Actor  { return shared.Actor{ID: id, Role: shared.RoleShipper} }

func createRequest() CreateOrderRequest {
	return CreateOrderRequest{
		ShopID:        "shop-1",
		PaymentMethod: "COD",
		DeliveryAddress: DeliveryAddressRequest{
			Label:       "Home",
			FullAddress: "12 Nguyen Hue, District 1",
		},
	}
}

func TestCreateOrderHappyPath(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.seedCart(t, "c1")

	resp, err := f.service.CreateOrder(ctx, asCustomer("c1"), createRequest())
	require.NoError(t, err)

	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "UNPAID", resp.PaymentStatus)
	assert.EqualValues(t, 105000, resp.Subtotal)
	assert.EqualValues(t, 15000, resp.ShipFee)
	assert.EqualValues(t, 120000, resp.Total)
	assert.Equal(t, "VND", resp.Currency)
	assert.Nil(t, resp.ShipperID)
	require.Len(t, resp.Items, 2)

	// The ordered shop's cart items are gone; here the whole cart.
	_, err = f.carts.FindByCustomerID(ctx, "c1")
	assert.ErrorIs(t, err, cart.ErrCartNotFound)

	// The placed event reaches the outbox in the same transaction.
	require.Len(t, f.uow.SavedEvents, 1)
	assert.Equal(t, "order.placed", f.uow.SavedEvents[0].EventName())
}

func TestCreateOrderKeepsOtherShopItems(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.catalog.AddShop(catalog.ShopReconstructionDTO{
		ID:      "shop-2",
		OwnerID: "owner-2",
		Name:    "Banh Mi Ba Lan",
		Open:    true,
		Status:  catalog.ShopStatusOpen,
	})
	c := cart.NewCart("c1")
	require.NoError(t, c.AddItem(cart.ProductSnapshot{
		ProductID: "p1", ShopID: "shop-1", Name: "Pho bo", Price: shared.VND(50000),
	}, 1))
	require.NoError(t, c.AddItem(cart.ProductSnapshot{
		ProductID: "p9", ShopID: "shop-2", Name: "Banh mi", Price: shared.VND(25000),
	}, 1))
	require.NoError(t, f.carts.Save(ctx, c))

	_, err := f.service.CreateOrder(ctx, asCustomer("c1"), createRequest())
	require.NoError(t, err)

	remaining, err := f.carts.FindByCustomerID(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, remaining.Items(), 1)
	assert.Equal(t, "p9", remaining.Items()[0].ProductID())
}

func TestCreateOrderEmptyCartGroup(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	// No cart at all.
	_, err := f.service.CreateOrder(ctx, asCustomer("c1"), createRequest())
	assert.ErrorIs(t, err, cart.ErrCartNotFound)

	// A cart with items, none for the requested shop.
	f.catalog.AddShop(catalog.ShopReconstructionDTO{
		ID:      "shop-2",
		OwnerID: "owner-2",
		Name:    "Banh Mi Ba Lan",
		Open:    true,
		Status:  catalog.ShopStatusOpen,
	})
	c := cart.NewCart("c1")
	require.NoError(t, c.AddItem(cart.ProductSnapshot{
		ProductID: "p9", ShopID: "shop-2", Name: "Banh mi", Price: shared.VND(25000),
	}, 1))
	require.NoError(t, f.carts.Save(ctx, c))

	_, err = f.service.CreateOrder(ctx, asCustomer("c1"), createRequest())
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}

func TestCreateOrderRejectsUnknownPaymentMethod(t *testing.T) {
	f := newOrderFixture()
	f.seedCart(t, "c1")

	req := createRequest()
	req.PaymentMethod = "CRYPTO"
	_, err := f.service.CreateOrder(context.Background(), asCustomer("c1"), req)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestCreateOrderRevalidatesProducts(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.seedCart(t, "c1")

	// p2 went unavailable after it was added to the cart.
	f.catalog.AddProduct(catalog.ProductReconstructionDTO{
		ID:        "p2",
		ShopID:    "shop-1",
		Name:      "Tra da",
		Price:     shared.VND(5000),
		Available: false,
	})

	_, err := f.service.CreateOrder(ctx, asCustomer("c1"), createRequest())
	require.ErrorIs(t, err, catalog.ErrProductUnavailable)

	// Nothing was committed: no order exists and the cart is intact.
	page, err := f.orders.FindByCustomer(ctx, "c1", order.ListFilter{}, order.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)

	c, err := f.carts.FindByCustomerID(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, c.Items(), 2)
	assert.Empty(t, f.uow.SavedEvents)
}

func TestCreateOrderAppliesVoucher(t *testing.T) {
	f := newOrderFixture()
	f.seedCart(t, "c1")
	f.vouchers.Discounts["SALE10"] = shared.VND(10000)

	req := createRequest()
	req.VoucherCode = "SALE10"
	resp, err := f.service.CreateOrder(context.Background(), asCustomer("c1"), req)
	require.NoError(t, err)

	assert.EqualValues(t, 10000, resp.Discount)
	assert.EqualValues(t, 110000, resp.Total)
	assert.Equal(t, "SALE10", resp.VoucherCode)
}

func TestCreateOrderInvalidVoucherAborts(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.seedCart(t, "c1")

	req := createRequest()
	req.VoucherCode = "NOPE"
	_, err := f.service.CreateOrder(ctx, asCustomer("c1"), req)
	require.Error(t, err)

	c, err := f.carts.FindByCustomerID(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, c.Items(), 2)
}

func TestShipperIDMarshalsAsExplicitNull(t *testing.T) {
	f := newOrderFixture()
	f.seedCart(t, "c1")

	resp, err := f.service.CreateOrder(context.Background(), asCustomer("c1"), createRequest())
	require.NoError(t, err)

	payload, err := json.Marshal(resp)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &fields))
	raw, ok := fields["shipperId"]
	require.True(t, ok, "shipperId must be present while unassigned")
	assert.Equal(t, "null", string(raw))
}

// placeOrder walks a fresh order to the given status through the service.
func (f *orderFixture) placeOrder(t *testing.T, customerID string, upTo order.Status) string {
	t.Helper()
	ctx := context.Background()
	f.seedCart(t, customerID)

	resp, err := f.service.CreateOrder(ctx, asCustomer(customerID), createRequest())
	require.NoError(t, err)
	id := resp.ID

	steps := []struct {
		status order.Status
		do     func() error
	}{
		{order.StatusConfirmed, func() error { _, err := f.service.ConfirmOrder(ctx, asOwner("owner-1"), id); return err }},
		{order.StatusPreparing, func() error { _, err := f.service.MarkPreparing(ctx, asOwner("owner-1"), id); return err }},
		{order.StatusReady, func() error { _, err := f.service.MarkReady(ctx, asOwner("owner-1"), id); return err }},
		{order.StatusShipping, func() error { _, err := f.service.AcceptOrder(ctx, asShipper("ship-1"), id); return err }},
		{order.StatusDelivered, func() error { _, err := f.service.MarkDelivered(ctx, asShipper("ship-1"), id); return err }},
	}
	for _, step := range steps {
		if upTo == order.StatusPending {
			break
		}
		require.NoError(t, step.do(), "advancing to %s", upTo)
		if step.status == upTo {
			break
		}
	}
	return id
}

func TestOwnerTransitionsRequireOwnership(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	id := f.placeOrder(t, "c1", order.StatusPending)

	f.catalog.AddShop(catalog.ShopReconstructionDTO{
		ID:      "shop-2",
		OwnerID: "owner-2",
		Name:    "Somebody else's shop",
		Open:    true,
		Status:  catalog.ShopStatusOpen,
	})

	_, err := f.service.ConfirmOrder(ctx, asOwner("owner-2"), id)
	assert.ErrorIs(t, err, order.ErrNotShopOwner)

	_, err = f.service.ConfirmOrder(ctx, asCustomer("c1"), id)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	resp, err := f.service.ConfirmOrder(ctx, asOwner("owner-1"), id)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", resp.Status)
	assert.NotNil(t, resp.ConfirmedAt)
}

func TestCustomerCancelRequiresOwnOrder(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	id := f.placeOrder(t, "c1", order.StatusPending)

	_, err := f.service.CancelOrder(ctx, asCustomer("c2"), id, CancelOrderRequest{Reason: "not mine"})
	assert.ErrorIs(t, err, order.ErrNotOrderCustomer)

	resp, err := f.service.CancelOrder(ctx, asCustomer("c1"), id, CancelOrderRequest{Reason: "ordered twice"})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
	assert.Equal(t, "CUSTOMER", resp.CancelledBy)
	assert.Equal(t, "ordered twice", resp.CancelReason)
}

func TestOwnerCancelNotFromPending(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	id := f.placeOrder(t, "c1", order.StatusPending)

	_, err := f.service.OwnerCancelOrder(ctx, asOwner("owner-1"), id, CancelOrderRequest{Reason: "no"})
	assert.ErrorIs(t, err, order.ErrInvalidStateTransition)
}

func TestAcceptOrderExactlyOneWinner(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	id := f.placeOrder(t, "c1", order.StatusReady)

	first, err := f.service.AcceptOrder(ctx, asShipper("ship-1"), id)
	require.NoError(t, err)
	assert.Equal(t, "SHIPPING", first.Status)
	require.NotNil(t, first.ShipperID)
	assert.Equal(t, "ship-1", *first.ShipperID)

	// The loser reloads an already-assigned order.
	_, err = f.service.AcceptOrder(ctx, asShipper("ship-2"), id)
	assert.ErrorIs(t, err, order.ErrAlreadyAssigned)

	detail, err := f.service.GetOrderDetail(ctx, asShipper("ship-1"), id)
	require.NoError(t, err)
	require.NotNil(t, detail.ShipperID)
	assert.Equal(t, "ship-1", *detail.ShipperID)
}

func TestAcceptOrderVersionArbitration(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	id := f.placeOrder(t, "c1", order.StatusReady)

	// Two shippers load the same version before either saves.
	left, err := f.orders.FindByID(ctx, id)
	require.NoError(t, err)
	right, err := f.orders.FindByID(ctx, id)
	require.NoError(t, err)

	require.NoError(t, left.Accept("ship-1"))
	require.NoError(t, right.Accept("ship-2"))

	require.NoError(t, f.orders.Save(ctx, left))
	err = f.orders.Save(ctx, right)
	assert.ErrorIs(t, err, order.ErrConcurrentModification)

	stored, err := f.orders.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, stored.ShipperID())
	assert.Equal(t, "ship-1", *stored.ShipperID())
	assert.Equal(t, order.StatusShipping, stored.Status())
}

func TestShipperLifecycle(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	id := f.placeOrder(t, "c1", order.StatusShipping)

	// Idempotent re-confirmation by the assigned shipper.
	resp, err := f.service.MarkShipping(ctx, asShipper("ship-1"), id)
	require.NoError(t, err)
	assert.Equal(t, "SHIPPING", resp.Status)

	_, err = f.service.MarkDelivered(ctx, asShipper("ship-2"), id)
	assert.ErrorIs(t, err, order.ErrNotAssignedShipper)

	resp, err = f.service.MarkDelivered(ctx, asShipper("ship-1"), id)
	require.NoError(t, err)
	assert.Equal(t, "DELIVERED", resp.Status)
	assert.Equal(t, "PAID", resp.PaymentStatus)
}

func TestGetOrderDetailScoping(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	id := f.placeOrder(t, "c1", order.StatusShipping)

	testCases := []struct {
		name    string
		actor   shared.Actor
		wantErr error
	}{
		{"own customer", asCustomer("c1"), nil},
		{"other customer", asCustomer("c2"), order.ErrNotOrderCustomer},
		{"shop owner", asOwner("owner-1"), nil},
		{"assigned shipper", asShipper("ship-1"), nil},
		{"other shipper", asShipper("ship-2"), order.ErrNotAssignedShipper},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.GetOrderDetail(ctx, tc.actor, id)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestGetAvailableOrders(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	readyID := f.placeOrder(t, "c1", order.StatusReady)
	f.placeOrder(t, "c2", order.StatusPending)
	takenID := f.placeOrder(t, "c3", order.StatusShipping)

	resp, err := f.service.GetAvailableOrders(ctx, asShipper("ship-9"), ListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, readyID, resp.Orders[0].ID)
	assert.NotEqual(t, takenID, resp.Orders[0].ID)

	_, err = f.service.GetAvailableOrders(ctx, asCustomer("c1"), ListQuery{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestGetMyOrdersFilterAndPagination(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		f.placeOrder(t, "c1", order.StatusPending)
	}

	resp, err := f.service.GetMyOrders(ctx, asCustomer("c1"), ListQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Orders, 2)
	assert.EqualValues(t, 3, resp.Total)
	assert.Equal(t, 2, resp.TotalPages)

	// Page beyond the end clamps to the last page and returns its rows.
	resp, err = f.service.GetMyOrders(ctx, asCustomer("c1"), ListQuery{Page: 99, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Orders, 1)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 2, resp.TotalPages)

	resp, err = f.service.GetMyOrders(ctx, asCustomer("c1"), ListQuery{Page: 1, Limit: 10, Status: "PENDING"})
	require.NoError(t, err)
	assert.Len(t, resp.Orders, 3)
}

func TestGetShopOrders(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.placeOrder(t, "c1", order.StatusPending)

	resp, err := f.service.GetShopOrders(ctx, asOwner("owner-1"), ListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Orders, 1)

	_, err = f.service.GetShopOrders(ctx, asShipper("ship-1"), ListQuery{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

// failingCartSaves delegates to the wrapped repository and fails the next
// Save while failures is positive.
type failingCartSaves struct {
	cart.Repository
	failures int
}

func (f *failingCartSaves) Save(ctx context.Context, c *cart.Cart) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("cart write failed")
	}
	return f.Repository.Save(ctx, c)
}

func TestCreateOrderCartWriteFailureRollsBackOrder(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	// A second shop's item keeps the cart non-empty after the clear, so the
	// cart write runs after the order write and fails between the two.
	f.catalog.AddShop(catalog.ShopReconstructionDTO{
		ID:      "shop-2",
		OwnerID: "owner-2",
		Name:    "Banh Mi Ba Lan",
		Open:    true,
		Status:  catalog.ShopStatusOpen,
	})
	c := cart.NewCart("c1")
	require.NoError(t, c.AddItem(cart.ProductSnapshot{
		ProductID: "p1", ShopID: "shop-1", Name: "Pho bo", Price: shared.VND(50000),
	}, 1))
	require.NoError(t, c.AddItem(cart.ProductSnapshot{
		ProductID: "p9", ShopID: "shop-2", Name: "Banh mi", Price: shared.VND(25000),
	}, 1))
	require.NoError(t, f.carts.Save(ctx, c))

	carts := &failingCartSaves{Repository: f.carts, failures: 1}
	factory := &mocks.UnitOfWorkFactory{Shared: f.uow}
	service := NewApplicationService(f.orders, carts, f.catalog, mocks.NewShopReader(f.catalog), f.vouchers, factory)

	_, err := service.CreateOrder(ctx, asCustomer("c1"), createRequest())
	require.Error(t, err)

	// Neither effect: no order row, the cart keeps both shops' items.
	page, err := f.orders.FindByCustomer(ctx, "c1", order.ListFilter{}, order.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Orders)

	remaining, err := f.carts.FindByCustomerID(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, remaining.Items(), 2)
	assert.Empty(t, f.uow.SavedEvents)
}

func TestCreateOrderCommitFailureRollsBack(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.seedCart(t, "c1")

	f.uow.BeforeCommit = func() error { return errors.New("connection lost") }
	_, err := f.service.CreateOrder(ctx, asCustomer("c1"), createRequest())
	require.Error(t, err)

	page, err := f.orders.FindByCustomer(ctx, "c1", order.ListFilter{}, order.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Orders)

	// The cart delete is undone along with the order write.
	remaining, err := f.carts.FindByCustomerID(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, remaining.Items(), 2)
	assert.Empty(t, f.uow.SavedEvents)
}
