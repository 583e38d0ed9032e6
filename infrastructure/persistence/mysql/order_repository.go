package mysql

import (
	"context"
	"errors"
	"strings"

	"foody/domain/order"
	"foody/infrastructure/persistence"
	"foody/infrastructure/persistence/mysql/po"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const orderNumberAttempts = 3

// isDuplicateOrderNumber reports whether err is a MySQL duplicate-key error
// on the order-number unique index.
func isDuplicateOrderNumber(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	return errors.As(err, &mysqlErr) &&
		mysqlErr.Number == 1062 &&
		strings.Contains(mysqlErr.Message, "uk_orders_number")
}

// OrderRepository GORM implementation of order.Repository.
//
// Save enforces strict optimistic locking; the shipper assignment race is
// decided here, not by the aggregate: the losing save sees zero rows
// affected and surfaces ErrConcurrentModification.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID loads an order with its items.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := r.getDB(ctx)

	var orderPO po.OrderPO
	if err := db.Where("id = ?", id).First(&orderPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, err
	}

	itemPOs, err := r.loadItems(db, []string{id})
	if err != nil {
		return nil, err
	}

	return orderPO.ToDomain(itemPOs[id]), nil
}

// Save creates or updates the order.
//
// Items are frozen at creation and never rewritten; updates only touch the
// order row. The update is compare-and-swap on the loaded version, and the
// shipper_id column is written on every update so the NULL-to-assigned
// transition lands exactly once.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	db := r.getDB(ctx)
	orderPO, itemPOs := po.FromOrderDomain(o)

	if o.IsNew() {
		// Select all fields so shipper_id is written explicitly as NULL;
		// the available-orders query depends on it. Order numbers are
		// second-resolution plus a short random suffix, so an insert can
		// collide on the unique number index; a fresh number resolves it.
		var err error
		for attempt := 0; attempt < orderNumberAttempts; attempt++ {
			if err = db.Select("*").Create(orderPO).Error; err == nil {
				break
			}
			if !isDuplicateOrderNumber(err) {
				return err
			}
			o.RefreshOrderNumber()
			orderPO.OrderNumber = o.OrderNumber()
		}
		if err != nil {
			return err
		}
		if len(itemPOs) > 0 {
			if err := db.Create(itemPOs).Error; err != nil {
				return err
			}
		}
		o.ClearDirtyTracking()
		return nil
	}

	expectedVersion := o.Version()
	result := db.Model(&po.OrderPO{}).
		Where("id = ? AND version = ?", o.ID(), expectedVersion).
		Updates(map[string]any{
			"shipper_id":     orderPO.ShipperID,
			"status":         orderPO.Status,
			"payment_status": orderPO.PaymentStatus,
			"cancel_reason":  orderPO.CancelReason,
			"cancelled_by":   orderPO.CancelledBy,
			"cancelled_at":   orderPO.CancelledAt,
			"confirmed_at":   orderPO.ConfirmedAt,
			"preparing_at":   orderPO.PreparingAt,
			"ready_at":       orderPO.ReadyAt,
			"shipping_at":    orderPO.ShippingAt,
			"delivered_at":   orderPO.DeliveredAt,
			"review_id":      orderPO.ReviewID,
			"reviewed_at":    orderPO.ReviewedAt,
			"paid_out":       orderPO.PaidOut,
			"paid_out_at":    orderPO.PaidOutAt,
			"version":        expectedVersion + 1,
			"updated_at":     orderPO.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&po.OrderPO{}).
			Where("id = ?", o.ID()).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return order.NewOrderNotFoundError(o.ID())
		}
		return order.NewConcurrentModificationError(o.ID())
	}

	o.IncrementVersionForSave()
	o.ClearDirtyTracking()
	return nil
}

// FindByCustomer lists the customer's orders, newest first.
func (r *OrderRepository) FindByCustomer(ctx context.Context, customerID string, filter order.ListFilter, page order.PageRequest) (*order.Page, error) {
	query := r.getDB(ctx).Model(&po.OrderPO{}).Where("customer_id = ?", customerID)
	return r.listPage(ctx, query, filter, page)
}

// FindByShop lists the shop's orders, newest first.
func (r *OrderRepository) FindByShop(ctx context.Context, shopID string, filter order.ListFilter, page order.PageRequest) (*order.Page, error) {
	query := r.getDB(ctx).Model(&po.OrderPO{}).Where("shop_id = ?", shopID)
	return r.listPage(ctx, query, filter, page)
}

// FindByShipper lists the shipper's accepted orders, newest first.
func (r *OrderRepository) FindByShipper(ctx context.Context, shipperID string, filter order.ListFilter, page order.PageRequest) (*order.Page, error) {
	query := r.getDB(ctx).Model(&po.OrderPO{}).Where("shipper_id = ?", shipperID)
	return r.listPage(ctx, query, filter, page)
}

// FindAvailable lists READY orders with no assigned shipper.
func (r *OrderRepository) FindAvailable(ctx context.Context, filter order.ListFilter, page order.PageRequest) (*order.Page, error) {
	query := r.getDB(ctx).Model(&po.OrderPO{}).
		Where("status = ? AND shipper_id IS NULL", order.StatusReady)
	if filter.ShopID != "" {
		query = query.Where("shop_id = ?", filter.ShopID)
	}
	// Status is fixed by the query itself; drop it from the filter.
	return r.listPage(ctx, query, order.ListFilter{}, page)
}

// listPage runs a count plus a window query and assembles the page.
func (r *OrderRepository) listPage(ctx context.Context, query *gorm.DB, filter order.ListFilter, page order.PageRequest) (*order.Page, error) {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var orderPOs []*po.OrderPO
	if err := query.
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}

	orderIDs := make([]string, 0, len(orderPOs))
	for _, orderPO := range orderPOs {
		orderIDs = append(orderIDs, orderPO.ID)
	}
	itemsByOrder, err := r.loadItems(r.getDB(ctx), orderIDs)
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(orderPOs))
	for _, orderPO := range orderPOs {
		orders = append(orders, orderPO.ToDomain(itemsByOrder[orderPO.ID]))
	}

	return &order.Page{Orders: orders, Total: total}, nil
}

// loadItems batch-loads order lines and groups them by order id.
func (r *OrderRepository) loadItems(db *gorm.DB, orderIDs []string) (map[string][]*po.OrderItemPO, error) {
	grouped := make(map[string][]*po.OrderItemPO, len(orderIDs))
	if len(orderIDs) == 0 {
		return grouped, nil
	}

	var itemPOs []*po.OrderItemPO
	if err := db.Where("order_id IN ?", orderIDs).Order("id ASC").Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	for _, itemPO := range itemPOs {
		grouped[itemPO.OrderID] = append(grouped[itemPO.OrderID], itemPO)
	}
	return grouped, nil
}

var _ order.Repository = (*OrderRepository)(nil)
