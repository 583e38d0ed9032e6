package cart

import "time"

// AddToCartRequest input for adding a product to the caller's cart.
// Quantity accumulates onto an existing entry for the same product.
type AddToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=999"`
}

// UpdateCartItemRequest input for a direct quantity overwrite.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=999"`
}

// CartItemResponse one line in a cart group.
type CartItemResponse struct {
	ProductID    string    `json:"productId"`
	ShopID       string    `json:"shopId"`
	ProductName  string    `json:"productName"`
	ProductImage string    `json:"productImage"`
	Quantity     int       `json:"quantity"`
	PriceAtAdd   int64     `json:"priceAtAdd"`
	Subtotal     int64     `json:"subtotal"`
	AddedAt      time.Time `json:"addedAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CartGroupResponse the per-shop view of the cart. ShipFee is always zero at
// cart stage; shipping is priced when the order is created.
type CartGroupResponse struct {
	ShopID   string             `json:"shopId"`
	ShopName string             `json:"shopName"`
	IsOpen   bool               `json:"isOpen"`
	ShipFee  int64              `json:"shipFee"`
	Subtotal int64              `json:"subtotal"`
	Items    []CartItemResponse `json:"items"`
}

// GroupedCartResponse the full grouped-by-shop cart view.
type GroupedCartResponse struct {
	Groups []CartGroupResponse `json:"groups"`
}

// ClearByShopResponse result of clearing one shop's items.
type ClearByShopResponse struct {
	RemovedCount int                 `json:"removedCount"`
	Groups       []CartGroupResponse `json:"groups"`
}
