/*
Package order - order business process orchestration.

Two operations here need real atomicity. CreateOrder writes the order and
clears the ordered shop's cart items in one transaction through the unit of
work. AcceptOrder relies on the repository's optimistic lock: when two
shippers race, the loser's save fails on version, the unit of work retries,
and the reload sees the order already assigned.
*/
package order

import (
	"context"

	"foody/domain/cart"
	"foody/domain/catalog"
	"foody/domain/order"
	"foody/domain/shared"
	"foody/domain/voucher"
)

// ApplicationService coordinates order creation, transitions and reads.
type ApplicationService struct {
	orders     order.Repository
	carts      cart.Repository
	products   catalog.ProductReader
	shops      catalog.ShopReader
	vouchers   voucher.Validator
	uowFactory shared.UnitOfWorkFactory
}

// NewApplicationService creates an order application service.
func NewApplicationService(
	orders order.Repository,
	carts cart.Repository,
	products catalog.ProductReader,
	shops catalog.ShopReader,
	vouchers voucher.Validator,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		orders:     orders,
		carts:      carts,
		products:   products,
		shops:      shops,
		vouchers:   vouchers,
		uowFactory: uowFactory,
	}
}

// ============================================================================
// Creation
// ============================================================================

// CreateOrder converts the actor's cart group for one shop into a PENDING
// order. The order write and the cart clear commit together or not at all.
func (s *ApplicationService) CreateOrder(ctx context.Context, actor shared.Actor, req CreateOrderRequest) (*OrderResponse, error) {
	method, ok := order.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		return nil, shared.NewValidationError("order", "paymentMethod", "unknown payment method "+req.PaymentMethod)
	}

	var o *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		c, err := s.carts.FindByCustomerID(ctx, actor.ID)
		if err != nil {
			return err
		}
		items := c.ItemsForShop(req.ShopID)
		if len(items) == 0 {
			return cart.NewCartNotFoundError(actor.ID)
		}

		shop, err := s.shops.FindByID(ctx, req.ShopID)
		if err != nil {
			return err
		}
		if !shop.IsOpen() {
			return catalog.NewShopClosedError(shop.ID())
		}

		// Re-validate every product: items added days ago may have gone
		// unavailable since.
		productIDs := make([]string, len(items))
		for i, item := range items {
			productIDs[i] = item.ProductID()
		}
		productsByID, err := s.products.FindByIDs(ctx, productIDs)
		if err != nil {
			return err
		}

		requests := make([]order.ItemRequest, len(items))
		subtotal := shared.VND(0)
		for i, item := range items {
			product, ok := productsByID[item.ProductID()]
			if !ok || !product.IsOrderable() {
				return catalog.NewProductUnavailableError(item.ProductID())
			}

			requests[i] = order.ItemRequest{
				ProductID:   item.ProductID(),
				ProductName: item.ProductName(),
				Image:       item.Image(),
				Quantity:    item.Quantity(),
				UnitPrice:   item.PriceAtAdd(),
			}

			sum, err := subtotal.Add(item.Subtotal())
			if err != nil {
				return err
			}
			subtotal = *sum
		}

		discount := shared.VND(0)
		if req.VoucherCode != "" {
			granted, err := s.vouchers.Validate(ctx, req.VoucherCode, req.ShopID, subtotal)
			if err != nil {
				return err
			}
			discount = granted
		}

		o, err = order.NewOrder(order.PostOptions{
			CustomerID:    actor.ID,
			ShopID:        shop.ID(),
			ShopName:      shop.Name(),
			Items:         requests,
			ShipFee:       shop.ShipFeePerOrder(),
			Discount:      discount,
			VoucherCode:   req.VoucherCode,
			PaymentMethod: method,
			DeliveryAddress: order.DeliveryAddress{
				Label:       req.DeliveryAddress.Label,
				FullAddress: req.DeliveryAddress.FullAddress,
				Building:    req.DeliveryAddress.Building,
				Room:        req.DeliveryAddress.Room,
				Note:        req.DeliveryAddress.Note,
			},
		})
		if err != nil {
			return err
		}

		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterNew(o)

		// Clear exactly the ordered shop's items. Other shops' items stay.
		c.RemoveShopItems(req.ShopID)
		if c.IsEmpty() {
			return s.carts.Delete(ctx, actor.ID)
		}
		if err := s.carts.Save(ctx, c); err != nil {
			return err
		}
		uow.RegisterDirty(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(o), nil
}

// ============================================================================
// Owner transitions
// ============================================================================

// ConfirmOrder PENDING → CONFIRMED by the shop owner.
func (s *ApplicationService) ConfirmOrder(ctx context.Context, actor shared.Actor, orderID string) (*OrderResponse, error) {
	return s.ownerTransition(ctx, actor, orderID, func(o *order.Order) error {
		return o.Confirm()
	})
}

// MarkPreparing CONFIRMED → PREPARING by the shop owner.
func (s *ApplicationService) MarkPreparing(ctx context.Context, actor shared.Actor, orderID string) (*OrderResponse, error) {
	return s.ownerTransition(ctx, actor, orderID, func(o *order.Order) error {
		return o.MarkPreparing()
	})
}

// MarkReady PREPARING → READY by the shop owner.
func (s *ApplicationService) MarkReady(ctx context.Context, actor shared.Actor, orderID string) (*OrderResponse, error) {
	return s.ownerTransition(ctx, actor, orderID, func(o *order.Order) error {
		return o.MarkReady()
	})
}

// OwnerCancelOrder CONFIRMED/PREPARING → CANCELLED by the shop owner.
func (s *ApplicationService) OwnerCancelOrder(ctx context.Context, actor shared.Actor, orderID string, req CancelOrderRequest) (*OrderResponse, error) {
	return s.ownerTransition(ctx, actor, orderID, func(o *order.Order) error {
		return o.CancelByOwner(req.Reason)
	})
}

func (s *ApplicationService) ownerTransition(ctx context.Context, actor shared.Actor, orderID string, transition func(*order.Order) error) (*OrderResponse, error) {
	if !actor.IsOwner() {
		return nil, shared.NewForbiddenError("order", "only shop owners may perform this operation")
	}

	var o *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		shop, err := s.shops.FindByID(ctx, o.ShopID())
		if err != nil {
			return err
		}
		if !shop.IsOwnedBy(actor.ID) {
			return order.NewNotShopOwnerError(orderID)
		}

		if err := transition(o); err != nil {
			return err
		}

		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(o), nil
}

// ============================================================================
// Customer transitions
// ============================================================================

// CancelOrder PENDING/CONFIRMED/PREPARING → CANCELLED by the ordering customer.
func (s *ApplicationService) CancelOrder(ctx context.Context, actor shared.Actor, orderID string, req CancelOrderRequest) (*OrderResponse, error) {
	if !actor.IsCustomer() {
		return nil, shared.NewForbiddenError("order", "only customers may cancel their own orders")
	}

	var o *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.CustomerID() != actor.ID {
			return order.NewNotOrderCustomerError(orderID)
		}

		if err := o.CancelByCustomer(req.Reason); err != nil {
			return err
		}

		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(o), nil
}

// ============================================================================
// Shipper transitions
// ============================================================================

// AcceptOrder claims a READY, unassigned order for the calling shipper.
// The optimistic lock decides the race: the losing save conflicts, the unit
// of work retries, and the reload finds the order assigned.
func (s *ApplicationService) AcceptOrder(ctx context.Context, actor shared.Actor, orderID string) (*OrderResponse, error) {
	return s.shipperTransition(ctx, actor, orderID, func(o *order.Order) error {
		return o.Accept(actor.ID)
	})
}

// MarkShipping re-confirms SHIPPING for the assigned shipper. Idempotent.
func (s *ApplicationService) MarkShipping(ctx context.Context, actor shared.Actor, orderID string) (*OrderResponse, error) {
	return s.shipperTransition(ctx, actor, orderID, func(o *order.Order) error {
		return o.MarkShipping(actor.ID)
	})
}

// MarkDelivered SHIPPING → DELIVERED by the assigned shipper. COD orders
// flip to PAID on delivery.
func (s *ApplicationService) MarkDelivered(ctx context.Context, actor shared.Actor, orderID string) (*OrderResponse, error) {
	return s.shipperTransition(ctx, actor, orderID, func(o *order.Order) error {
		return o.MarkDelivered(actor.ID)
	})
}

func (s *ApplicationService) shipperTransition(ctx context.Context, actor shared.Actor, orderID string, transition func(*order.Order) error) (*OrderResponse, error) {
	if !actor.IsShipper() {
		return nil, shared.NewForbiddenError("order", "only shippers may perform this operation")
	}

	var o *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if err := transition(o); err != nil {
			return err
		}

		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(o), nil
}

// ============================================================================
// Reads
// ============================================================================

// GetOrderDetail loads one order, scoped to the actor: customers see their
// own orders, owners their shop's, shippers the orders assigned to them.
func (s *ApplicationService) GetOrderDetail(ctx context.Context, actor shared.Actor, orderID string) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.IsCustomer():
		if o.CustomerID() != actor.ID {
			return nil, order.NewNotOrderCustomerError(orderID)
		}
	case actor.IsOwner():
		shop, err := s.shops.FindByID(ctx, o.ShopID())
		if err != nil {
			return nil, err
		}
		if !shop.IsOwnedBy(actor.ID) {
			return nil, order.NewNotShopOwnerError(orderID)
		}
	case actor.IsShipper():
		if o.ShipperID() == nil || *o.ShipperID() != actor.ID {
			return nil, order.NewNotAssignedShipperError(orderID)
		}
	default:
		return nil, shared.NewForbiddenError("order", "unknown role")
	}

	return toOrderResponse(o), nil
}

// GetMyOrders lists the actor's own orders.
func (s *ApplicationService) GetMyOrders(ctx context.Context, actor shared.Actor, query ListQuery) (*PagedOrdersResponse, error) {
	filter, page := toListParams(query)
	return listOrders(func(p order.PageRequest) (*order.Page, error) {
		return s.orders.FindByCustomer(ctx, actor.ID, filter, p)
	}, page)
}

// GetShopOrders lists orders of the shop the actor owns.
func (s *ApplicationService) GetShopOrders(ctx context.Context, actor shared.Actor, query ListQuery) (*PagedOrdersResponse, error) {
	if !actor.IsOwner() {
		return nil, shared.NewForbiddenError("order", "only shop owners may list shop orders")
	}

	shop, err := s.shops.FindByOwnerID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	filter, page := toListParams(query)
	return listOrders(func(p order.PageRequest) (*order.Page, error) {
		return s.orders.FindByShop(ctx, shop.ID(), filter, p)
	}, page)
}

// GetShipperOrders lists orders assigned to the calling shipper.
func (s *ApplicationService) GetShipperOrders(ctx context.Context, actor shared.Actor, query ListQuery) (*PagedOrdersResponse, error) {
	if !actor.IsShipper() {
		return nil, shared.NewForbiddenError("order", "only shippers may list shipper orders")
	}

	filter, page := toListParams(query)
	return listOrders(func(p order.PageRequest) (*order.Page, error) {
		return s.orders.FindByShipper(ctx, actor.ID, filter, p)
	}, page)
}

// GetAvailableOrders lists READY orders with no assigned shipper,
// optionally narrowed to one shop.
func (s *ApplicationService) GetAvailableOrders(ctx context.Context, actor shared.Actor, query ListQuery) (*PagedOrdersResponse, error) {
	if !actor.IsShipper() {
		return nil, shared.NewForbiddenError("order", "only shippers may list available orders")
	}

	_, page := toListParams(query)
	return listOrders(func(p order.PageRequest) (*order.Page, error) {
		return s.orders.FindAvailable(ctx, order.ListFilter{ShopID: query.ShopID}, p)
	}, page)
}

// listOrders runs the window query and, when the requested page lies past
// the end, re-runs it on the last page so the labeled page matches the
// returned rows.
func listOrders(query func(order.PageRequest) (*order.Page, error), page order.PageRequest) (*PagedOrdersResponse, error) {
	result, err := query(page)
	if err != nil {
		return nil, err
	}
	if last := lastPage(result.Total, page.Limit); last > 0 && page.Page > last {
		page.Page = last
		if result, err = query(page); err != nil {
			return nil, err
		}
	}
	return toPagedResponse(result, page), nil
}

func toListParams(query ListQuery) (order.ListFilter, order.PageRequest) {
	page := order.PageRequest{Page: query.Page, Limit: query.Limit}
	if page.Page < 1 {
		page.Page = 1
	}
	if page.Limit < 1 {
		page.Limit = 10
	}

	var filter order.ListFilter
	if status, ok := order.ParseStatus(query.Status); ok {
		filter.Status = &status
	}
	return filter, page
}
