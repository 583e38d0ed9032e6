package cart

import (
	"foody/domain/cart"
	"foody/domain/catalog"
)

// groupItems partitions cart items by shop, in first-appearance order.
// Items whose shop is missing from the lookup result are dropped: a deleted
// shop makes its cart entries stale data to tolerate, not an error.
func groupItems(c *cart.Cart, shops map[string]*catalog.Shop) []CartGroupResponse {
	groups := make([]CartGroupResponse, 0)
	if c == nil {
		return groups
	}

	for _, shopID := range c.ShopIDs() {
		shop, ok := shops[shopID]
		if !ok {
			continue
		}

		items := c.ItemsForShop(shopID)
		itemResponses := make([]CartItemResponse, len(items))
		var subtotal int64
		for i, item := range items {
			itemResponses[i] = CartItemResponse{
				ProductID:    item.ProductID(),
				ShopID:       item.ShopID(),
				ProductName:  item.ProductName(),
				ProductImage: item.Image(),
				Quantity:     item.Quantity(),
				PriceAtAdd:   item.PriceAtAdd().Amount(),
				Subtotal:     item.Subtotal().Amount(),
				AddedAt:      item.AddedAt(),
				UpdatedAt:    item.UpdatedAt(),
			}
			subtotal += item.Subtotal().Amount()
		}

		groups = append(groups, CartGroupResponse{
			ShopID:   shopID,
			ShopName: shop.Name(),
			IsOpen:   shop.IsOpen(),
			ShipFee:  0,
			Subtotal: subtotal,
			Items:    itemResponses,
		})
	}

	return groups
}
