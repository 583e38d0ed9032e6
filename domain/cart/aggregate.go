package cart

import (
	"time"

	"foody/domain/shared"
)

// MaxItemQuantity per-product ceiling. Accumulating past it is rejected.
const MaxItemQuantity = 999

// Cart aggregate root. One cart per customer, spanning all shops; the cart
// holds at most one Item per product id across the whole cart, so re-adding
// a product increments the existing entry instead of duplicating it.
//
// A cart exists only while it has at least one item. Repositories delete the
// document when the last item is removed; the aggregate exposes IsEmpty for
// them to decide save-vs-delete.
type Cart struct {
	customerID string
	items      []Item
	version    int
	createdAt  time.Time
	updatedAt  time.Time
	isNew      bool
}

// Item one distinct product in the cart. Name, image and price are snapshots
// refreshed on every add/increment ("last touched" semantics); addedAt is set
// once and preserved across increments.
type Item struct {
	productID   string
	shopID      string
	productName string
	image       string
	quantity    int
	priceAtAdd  shared.Money
	addedAt     time.Time
	updatedAt   time.Time
}

// ProductSnapshot current catalog values copied into an Item on add.
type ProductSnapshot struct {
	ProductID string
	ShopID    string
	Name      string
	Image     string
	Price     shared.Money
}

// NewCart creates an empty cart for a customer. The first AddItem call
// is expected immediately after; an empty cart is never persisted on its own.
func NewCart(customerID string) *Cart {
	now := time.Now()
	return &Cart{
		customerID: customerID,
		items:      nil,
		version:    0,
		createdAt:  now,
		updatedAt:  now,
		isNew:      true,
	}
}

// ReconstructionDTO rebuilds a Cart from storage. Repository-layer use only.
type ReconstructionDTO struct {
	CustomerID string
	Items      []Item
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RebuildFromDTO reconstructs a Cart aggregate from a DTO.
func RebuildFromDTO(dto ReconstructionDTO) *Cart {
	return &Cart{
		customerID: dto.CustomerID,
		items:      dto.Items,
		version:    dto.Version,
		createdAt:  dto.CreatedAt,
		updatedAt:  dto.UpdatedAt,
		isNew:      false,
	}
}

// ItemReconstructionDTO rebuilds an Item from storage.
type ItemReconstructionDTO struct {
	ProductID   string
	ShopID      string
	ProductName string
	Image       string
	Quantity    int
	PriceAtAdd  shared.Money
	AddedAt     time.Time
	UpdatedAt   time.Time
}

// RebuildItemFromDTO reconstructs an Item from a DTO.
func RebuildItemFromDTO(dto ItemReconstructionDTO) Item {
	return Item{
		productID:   dto.ProductID,
		shopID:      dto.ShopID,
		productName: dto.ProductName,
		image:       dto.Image,
		quantity:    dto.Quantity,
		priceAtAdd:  dto.PriceAtAdd,
		addedAt:     dto.AddedAt,
		updatedAt:   dto.UpdatedAt,
	}
}

// AddItem adds a product or accumulates quantity onto the existing entry.
// On increment the name/image/price snapshots are refreshed to the current
// catalog values while addedAt keeps the timestamp of the first add.
func (c *Cart) AddItem(snapshot ProductSnapshot, quantity int) error {
	if quantity < 1 || quantity > MaxItemQuantity {
		return ErrInvalidQuantity
	}

	now := time.Now()
	for i := range c.items {
		if c.items[i].productID != snapshot.ProductID {
			continue
		}

		newQuantity := c.items[i].quantity + quantity
		if newQuantity > MaxItemQuantity {
			return NewQuantityCeilingError(snapshot.ProductID, c.items[i].quantity, quantity)
		}

		c.items[i].quantity = newQuantity
		c.items[i].productName = snapshot.Name
		c.items[i].image = snapshot.Image
		c.items[i].priceAtAdd = snapshot.Price
		c.items[i].updatedAt = now
		c.updatedAt = now
		return nil
	}

	c.items = append(c.items, Item{
		productID:   snapshot.ProductID,
		shopID:      snapshot.ShopID,
		productName: snapshot.Name,
		image:       snapshot.Image,
		quantity:    quantity,
		priceAtAdd:  snapshot.Price,
		addedAt:     now,
		updatedAt:   now,
	})
	c.updatedAt = now
	return nil
}

// SetItemQuantity overwrites the quantity of an existing item.
// Unlike AddItem there is no accumulation.
func (c *Cart) SetItemQuantity(productID string, quantity int) error {
	if quantity < 1 || quantity > MaxItemQuantity {
		return ErrInvalidQuantity
	}

	now := time.Now()
	for i := range c.items {
		if c.items[i].productID == productID {
			c.items[i].quantity = quantity
			c.items[i].updatedAt = now
			c.updatedAt = now
			return nil
		}
	}
	return NewItemNotFoundError(productID)
}

// RemoveItem removes one product from the cart.
func (c *Cart) RemoveItem(productID string) error {
	for i := range c.items {
		if c.items[i].productID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.updatedAt = time.Now()
			return nil
		}
	}
	return NewItemNotFoundError(productID)
}

// RemoveShopItems removes every item belonging to the shop and returns how
// many entries were removed. Removing zero items is not an error.
func (c *Cart) RemoveShopItems(shopID string) int {
	kept := c.items[:0]
	removed := 0
	for _, item := range c.items {
		if item.shopID == shopID {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	c.items = kept
	if removed > 0 {
		c.updatedAt = time.Now()
	}
	return removed
}

// ItemsForShop returns the items belonging to one shop, in insertion order.
func (c *Cart) ItemsForShop(shopID string) []Item {
	var items []Item
	for _, item := range c.items {
		if item.shopID == shopID {
			items = append(items, item)
		}
	}
	return items
}

// ShopIDs returns the distinct shop ids present in the cart,
// in first-appearance order.
func (c *Cart) ShopIDs() []string {
	seen := make(map[string]struct{}, len(c.items))
	var ids []string
	for _, item := range c.items {
		if _, ok := seen[item.shopID]; ok {
			continue
		}
		seen[item.shopID] = struct{}{}
		ids = append(ids, item.shopID)
	}
	return ids
}

// IsEmpty reports whether the cart has no items left.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// IncrementVersionForSave is called by the repository after a successful save.
func (c *Cart) IncrementVersionForSave() {
	c.version++
}

func (c *Cart) CustomerID() string { return c.customerID }

// Items returns a copy of the cart items in insertion order.
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) Version() int         { return c.version }
func (c *Cart) CreatedAt() time.Time { return c.createdAt }
func (c *Cart) UpdatedAt() time.Time { return c.updatedAt }
func (c *Cart) IsNew() bool          { return c.isNew }

// ID satisfies shared.AggregateRoot; the cart is keyed by its customer.
func (c *Cart) ID() string { return c.customerID }

// PullEvents satisfies shared.AggregateRoot. Cart changes raise no
// domain events; only orders do.
func (c *Cart) PullEvents() []shared.DomainEvent { return nil }

// ClearDirtyTracking is called by the repository after a successful save.
func (c *Cart) ClearDirtyTracking() { c.isNew = false }

// Item getters - read-only access.

func (item Item) ProductID() string        { return item.productID }
func (item Item) ShopID() string           { return item.shopID }
func (item Item) ProductName() string      { return item.productName }
func (item Item) Image() string            { return item.image }
func (item Item) Quantity() int            { return item.quantity }
func (item Item) PriceAtAdd() shared.Money { return item.priceAtAdd }
func (item Item) AddedAt() time.Time       { return item.addedAt }
func (item Item) UpdatedAt() time.Time     { return item.updatedAt }

// Subtotal returns priceAtAdd * quantity.
func (item Item) Subtotal() shared.Money {
	subtotal, err := item.priceAtAdd.Multiply(item.quantity)
	if err != nil {
		// Quantity is capped at 999 and prices are validated on ingest,
		// so overflow is unreachable; return zero rather than panic.
		return shared.VND(0)
	}
	return *subtotal
}

// Compile-time check that Cart implements AggregateRoot.
var _ shared.AggregateRoot = (*Cart)(nil)
