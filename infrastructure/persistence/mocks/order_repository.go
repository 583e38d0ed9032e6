package mocks

import (
	"context"
	"sort"
	"sync"

	"foody/domain/order"
)

// OrderRepository in-memory order store with version checking. Listings
// sort newest first like the MySQL queries.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
}

// NewOrderRepository creates an empty in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]*order.Order)}
}

// FindByID returns an isolated copy of the stored order.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.orders[id]
	if !ok {
		return nil, order.NewOrderNotFoundError(id)
	}
	return cloneOrder(stored), nil
}

// Save stores the order, enforcing the optimistic-lock contract.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.orders[o.ID()]
	if o.IsNew() {
		if exists {
			return order.NewConcurrentModificationError(o.ID())
		}
		r.orders[o.ID()] = cloneOrder(o)
		o.ClearDirtyTracking()
		return nil
	}

	if !exists {
		return order.NewOrderNotFoundError(o.ID())
	}
	if stored.Version() != o.Version() {
		return order.NewConcurrentModificationError(o.ID())
	}

	o.IncrementVersionForSave()
	r.orders[o.ID()] = cloneOrder(o)
	o.ClearDirtyTracking()
	return nil
}

// FindByCustomer lists the customer's orders.
func (r *OrderRepository) FindByCustomer(ctx context.Context, customerID string, filter order.ListFilter, page order.PageRequest) (*order.Page, error) {
	return r.list(func(o *order.Order) bool {
		return o.CustomerID() == customerID
	}, filter, page)
}

// FindByShop lists the shop's orders.
func (r *OrderRepository) FindByShop(ctx context.Context, shopID string, filter order.ListFilter, page order.PageRequest) (*order.Page, error) {
	return r.list(func(o *order.Order) bool {
		return o.ShopID() == shopID
	}, filter, page)
}

// FindByShipper lists the shipper's accepted orders.
func (r *OrderRepository) FindByShipper(ctx context.Context, shipperID string, filter order.ListFilter, page order.PageRequest) (*order.Page, error) {
	return r.list(func(o *order.Order) bool {
		return o.ShipperID() != nil && *o.ShipperID() == shipperID
	}, filter, page)
}

// FindAvailable lists READY orders with no assigned shipper.
func (r *OrderRepository) FindAvailable(ctx context.Context, filter order.ListFilter, page order.PageRequest) (*order.Page, error) {
	shopID := filter.ShopID
	return r.list(func(o *order.Order) bool {
		if o.Status() != order.StatusReady || o.ShipperID() != nil {
			return false
		}
		return shopID == "" || o.ShopID() == shopID
	}, order.ListFilter{}, page)
}

func (r *OrderRepository) list(match func(*order.Order) bool, filter order.ListFilter, page order.PageRequest) (*order.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*order.Order
	for _, o := range r.orders {
		if !match(o) {
			continue
		}
		if filter.Status != nil && o.Status() != *filter.Status {
			continue
		}
		matched = append(matched, o)
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

	orders := make([]*order.Order, 0, end-offset)
	for _, o := range matched[offset:end] {
		orders = append(orders, cloneOrder(o))
	}
	return &order.Page{Orders: orders, Total: total}, nil
}

func (r *OrderRepository) snapshot() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make(map[string]*order.Order, len(r.orders))
	for id, o := range r.orders {
		orders[id] = cloneOrder(o)
	}
	return orders
}

func (r *OrderRepository) restore(snapshot any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = snapshot.(map[string]*order.Order)
}

// cloneOrder deep-copies an order through its reconstruction DTO. Pending
// events are not carried into the copy; they belong to the live aggregate.
func cloneOrder(o *order.Order) *order.Order {
	items := o.Items()
	itemDTOs := make([]order.Item, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, order.RebuildItemFromDTO(order.ItemReconstructionDTO{
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Image:       item.Image(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
			Subtotal:    item.Subtotal(),
		}))
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:              o.ID(),
		OrderNumber:     o.OrderNumber(),
		CustomerID:      o.CustomerID(),
		ShopID:          o.ShopID(),
		ShopName:        o.ShopName(),
		ShipperID:       o.ShipperID(),
		Items:           itemDTOs,
		Subtotal:        o.Subtotal(),
		ShipFee:         o.ShipFee(),
		Discount:        o.Discount(),
		Total:           o.Total(),
		Status:          o.Status(),
		PaymentStatus:   o.PaymentStatus(),
		PaymentMethod:   o.PaymentMethod(),
		VoucherCode:     o.VoucherCode(),
		DeliveryAddress: o.DeliveryAddress(),
		CancelReason:    o.CancelReason(),
		CancelledBy:     o.CancelledBy(),
		CancelledAt:     o.CancelledAt(),
		ConfirmedAt:     o.ConfirmedAt(),
		PreparingAt:     o.PreparingAt(),
		ReadyAt:         o.ReadyAt(),
		ShippingAt:      o.ShippingAt(),
		DeliveredAt:     o.DeliveredAt(),
		ReviewID:        o.ReviewID(),
		ReviewedAt:      o.ReviewedAt(),
		PaidOut:         o.PaidOut(),
		PaidOutAt:       o.PaidOutAt(),
		Version:         o.Version(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	})
}

var _ order.Repository = (*OrderRepository)(nil)
