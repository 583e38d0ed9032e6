// Package po contains persistence objects: flat GORM-mapped structs that
// shuttle state between MySQL and the domain aggregates. POs never leak out
// of the infrastructure layer.
package po

import (
	"time"

	"foody/domain/cart"
	"foody/domain/shared"
)

// CartPO cart row, keyed by customer. Items live in cart_items.
type CartPO struct {
	CustomerID string    `gorm:"column:customer_id;type:varchar(36);primaryKey"`
	Version    int       `gorm:"column:version;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name
func (CartPO) TableName() string {
	return "carts"
}

// CartItemPO one distinct product in a cart.
type CartItemPO struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID  string    `gorm:"column:customer_id;type:varchar(36);not null;uniqueIndex:uk_cart_items_customer_product,priority:1"`
	ProductID   string    `gorm:"column:product_id;type:varchar(36);not null;uniqueIndex:uk_cart_items_customer_product,priority:2"`
	ShopID      string    `gorm:"column:shop_id;type:varchar(36);not null;index:idx_cart_items_shop"`
	ProductName string    `gorm:"column:product_name;type:varchar(255);not null"`
	Image       string    `gorm:"column:image;type:varchar(512)"`
	Quantity    int       `gorm:"column:quantity;not null"`
	PriceAtAdd  int64     `gorm:"column:price_at_add;not null"`
	Currency    string    `gorm:"column:currency;type:varchar(8);not null"`
	AddedAt     time.Time `gorm:"column:added_at;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name
func (CartItemPO) TableName() string {
	return "cart_items"
}

// FromCartDomain converts a Cart aggregate to its row representations.
func FromCartDomain(c *cart.Cart) (*CartPO, []*CartItemPO) {
	cartPO := &CartPO{
		CustomerID: c.CustomerID(),
		Version:    c.Version(),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	}

	items := c.Items()
	itemPOs := make([]*CartItemPO, 0, len(items))
	for _, item := range items {
		itemPOs = append(itemPOs, &CartItemPO{
			CustomerID:  c.CustomerID(),
			ProductID:   item.ProductID(),
			ShopID:      item.ShopID(),
			ProductName: item.ProductName(),
			Image:       item.Image(),
			Quantity:    item.Quantity(),
			PriceAtAdd:  item.PriceAtAdd().Amount(),
			Currency:    item.PriceAtAdd().Currency(),
			AddedAt:     item.AddedAt(),
			UpdatedAt:   item.UpdatedAt(),
		})
	}

	return cartPO, itemPOs
}

// ToDomain reconstructs the Cart aggregate from its rows.
// Item insertion order is preserved by the auto-increment id.
func (p *CartPO) ToDomain(itemPOs []*CartItemPO) *cart.Cart {
	items := make([]cart.Item, 0, len(itemPOs))
	for _, itemPO := range itemPOs {
		items = append(items, cart.RebuildItemFromDTO(cart.ItemReconstructionDTO{
			ProductID:   itemPO.ProductID,
			ShopID:      itemPO.ShopID,
			ProductName: itemPO.ProductName,
			Image:       itemPO.Image,
			Quantity:    itemPO.Quantity,
			PriceAtAdd:  *shared.NewMoney(itemPO.PriceAtAdd, itemPO.Currency),
			AddedAt:     itemPO.AddedAt,
			UpdatedAt:   itemPO.UpdatedAt,
		}))
	}

	return cart.RebuildFromDTO(cart.ReconstructionDTO{
		CustomerID: p.CustomerID,
		Items:      items,
		Version:    p.Version,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	})
}
