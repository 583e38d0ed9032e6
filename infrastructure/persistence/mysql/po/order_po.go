package po

import (
	"time"

	"foody/domain/order"
	"foody/domain/shared"
)

// OrderPO order row.
//
// ShipperID is a nullable column and is written explicitly, NULL included,
// on every save: the available-orders listing filters on shipper_id IS NULL,
// so the column must be present and NULL from the first insert.
type OrderPO struct {
	ID          string  `gorm:"column:id;type:varchar(36);primaryKey"`
	OrderNumber string  `gorm:"column:order_number;type:varchar(32);not null;uniqueIndex:uk_orders_number"`
	CustomerID  string  `gorm:"column:customer_id;type:varchar(36);not null;index:idx_orders_customer"`
	ShopID      string  `gorm:"column:shop_id;type:varchar(36);not null;index:idx_orders_shop"`
	ShopName    string  `gorm:"column:shop_name;type:varchar(255);not null"`
	ShipperID   *string `gorm:"column:shipper_id;type:varchar(36);index:idx_orders_shipper"`

	Subtotal int64  `gorm:"column:subtotal;not null"`
	ShipFee  int64  `gorm:"column:ship_fee;not null"`
	Discount int64  `gorm:"column:discount;not null"`
	Total    int64  `gorm:"column:total;not null"`
	Currency string `gorm:"column:currency;type:varchar(8);not null"`

	Status        string `gorm:"column:status;type:varchar(16);not null;index:idx_orders_status"`
	PaymentStatus string `gorm:"column:payment_status;type:varchar(16);not null"`
	PaymentMethod string `gorm:"column:payment_method;type:varchar(16);not null"`
	VoucherCode   string `gorm:"column:voucher_code;type:varchar(64)"`

	AddressLabel string `gorm:"column:address_label;type:varchar(64)"`
	AddressFull  string `gorm:"column:address_full;type:varchar(512);not null"`
	AddressBuild string `gorm:"column:address_building;type:varchar(128)"`
	AddressRoom  string `gorm:"column:address_room;type:varchar(64)"`
	AddressNote  string `gorm:"column:address_note;type:varchar(512)"`

	CancelReason string     `gorm:"column:cancel_reason;type:varchar(512)"`
	CancelledBy  string     `gorm:"column:cancelled_by;type:varchar(16)"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at"`
	ConfirmedAt  *time.Time `gorm:"column:confirmed_at"`
	PreparingAt  *time.Time `gorm:"column:preparing_at"`
	ReadyAt      *time.Time `gorm:"column:ready_at"`
	ShippingAt   *time.Time `gorm:"column:shipping_at"`
	DeliveredAt  *time.Time `gorm:"column:delivered_at"`

	ReviewID   *string    `gorm:"column:review_id;type:varchar(36)"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at"`

	PaidOut   bool       `gorm:"column:paid_out;not null;default:false"`
	PaidOutAt *time.Time `gorm:"column:paid_out_at"`

	Version   int       `gorm:"column:version;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_orders_created"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name
func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO one snapshotted order line.
type OrderItemPO struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID     string `gorm:"column:order_id;type:varchar(36);not null;index:idx_order_items_order"`
	ProductID   string `gorm:"column:product_id;type:varchar(36);not null"`
	ProductName string `gorm:"column:product_name;type:varchar(255);not null"`
	Image       string `gorm:"column:image;type:varchar(512)"`
	Quantity    int    `gorm:"column:quantity;not null"`
	UnitPrice   int64  `gorm:"column:unit_price;not null"`
	Subtotal    int64  `gorm:"column:subtotal;not null"`
	Currency    string `gorm:"column:currency;type:varchar(8);not null"`
}

// TableName specifies the table name
func (OrderItemPO) TableName() string {
	return "order_items"
}

// FromOrderDomain converts an Order aggregate to its row representations.
func FromOrderDomain(o *order.Order) (*OrderPO, []*OrderItemPO) {
	address := o.DeliveryAddress()
	orderPO := &OrderPO{
		ID:            o.ID(),
		OrderNumber:   o.OrderNumber(),
		CustomerID:    o.CustomerID(),
		ShopID:        o.ShopID(),
		ShopName:      o.ShopName(),
		ShipperID:     o.ShipperID(),
		Subtotal:      o.Subtotal().Amount(),
		ShipFee:       o.ShipFee().Amount(),
		Discount:      o.Discount().Amount(),
		Total:         o.Total().Amount(),
		Currency:      o.Total().Currency(),
		Status:        string(o.Status()),
		PaymentStatus: string(o.PaymentStatus()),
		PaymentMethod: string(o.PaymentMethod()),
		VoucherCode:   o.VoucherCode(),
		AddressLabel:  address.Label,
		AddressFull:   address.FullAddress,
		AddressBuild:  address.Building,
		AddressRoom:   address.Room,
		AddressNote:   address.Note,
		CancelReason:  o.CancelReason(),
		CancelledBy:   string(o.CancelledBy()),
		CancelledAt:   o.CancelledAt(),
		ConfirmedAt:   o.ConfirmedAt(),
		PreparingAt:   o.PreparingAt(),
		ReadyAt:       o.ReadyAt(),
		ShippingAt:    o.ShippingAt(),
		DeliveredAt:   o.DeliveredAt(),
		ReviewID:      o.ReviewID(),
		ReviewedAt:    o.ReviewedAt(),
		PaidOut:       o.PaidOut(),
		PaidOutAt:     o.PaidOutAt(),
		Version:       o.Version(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}

	items := o.Items()
	itemPOs := make([]*OrderItemPO, 0, len(items))
	for _, item := range items {
		itemPOs = append(itemPOs, &OrderItemPO{
			OrderID:     o.ID(),
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Image:       item.Image(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Amount(),
			Subtotal:    item.Subtotal().Amount(),
			Currency:    item.UnitPrice().Currency(),
		})
	}

	return orderPO, itemPOs
}

// ToDomain reconstructs the Order aggregate from its rows.
func (p *OrderPO) ToDomain(itemPOs []*OrderItemPO) *order.Order {
	items := make([]order.Item, 0, len(itemPOs))
	for _, itemPO := range itemPOs {
		items = append(items, order.RebuildItemFromDTO(order.ItemReconstructionDTO{
			ProductID:   itemPO.ProductID,
			ProductName: itemPO.ProductName,
			Image:       itemPO.Image,
			Quantity:    itemPO.Quantity,
			UnitPrice:   *shared.NewMoney(itemPO.UnitPrice, itemPO.Currency),
			Subtotal:    *shared.NewMoney(itemPO.Subtotal, itemPO.Currency),
		}))
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:            p.ID,
		OrderNumber:   p.OrderNumber,
		CustomerID:    p.CustomerID,
		ShopID:        p.ShopID,
		ShopName:      p.ShopName,
		ShipperID:     p.ShipperID,
		Items:         items,
		Subtotal:      *shared.NewMoney(p.Subtotal, p.Currency),
		ShipFee:       *shared.NewMoney(p.ShipFee, p.Currency),
		Discount:      *shared.NewMoney(p.Discount, p.Currency),
		Total:         *shared.NewMoney(p.Total, p.Currency),
		Status:        order.Status(p.Status),
		PaymentStatus: order.PaymentStatus(p.PaymentStatus),
		PaymentMethod: order.PaymentMethod(p.PaymentMethod),
		VoucherCode:   p.VoucherCode,
		DeliveryAddress: order.DeliveryAddress{
			Label:       p.AddressLabel,
			FullAddress: p.AddressFull,
			Building:    p.AddressBuild,
			Room:        p.AddressRoom,
			Note:        p.AddressNote,
		},
		CancelReason: p.CancelReason,
		CancelledBy:  order.CancelledBy(p.CancelledBy),
		CancelledAt:  p.CancelledAt,
		ConfirmedAt:  p.ConfirmedAt,
		PreparingAt:  p.PreparingAt,
		ReadyAt:      p.ReadyAt,
		ShippingAt:   p.ShippingAt,
		DeliveredAt:  p.DeliveredAt,
		ReviewID:     p.ReviewID,
		ReviewedAt:   p.ReviewedAt,
		PaidOut:      p.PaidOut,
		PaidOutAt:    p.PaidOutAt,
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	})
}
