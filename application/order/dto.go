package order

import "time"

// DeliveryAddressRequest the delivery address snapshot supplied at creation.
type DeliveryAddressRequest struct {
	Label       string `json:"label"`
	FullAddress string `json:"fullAddress" binding:"required"`
	Building    string `json:"building"`
	Room        string `json:"room"`
	Note        string `json:"note"`
}

// CreateOrderRequest input for the cart-to-order transition. The order is
// created from the caller's cart group for ShopID.
type CreateOrderRequest struct {
	ShopID          string                 `json:"shopId" binding:"required"`
	PaymentMethod   string                 `json:"paymentMethod" binding:"required,oneof=COD MOMO VNPAY"`
	VoucherCode     string                 `json:"voucherCode"`
	DeliveryAddress DeliveryAddressRequest `json:"deliveryAddress" binding:"required"`
}

// CancelOrderRequest optional reason for a cancellation.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// ListQuery query-string filters for the paginated listings.
type ListQuery struct {
	Page   int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit  int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED PREPARING READY SHIPPING DELIVERED CANCELLED"`
	ShopID string `form:"shopId"`
}

// OrderItemResponse one frozen line item.
type OrderItemResponse struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Image       string `json:"image"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	Subtotal    int64  `json:"subtotal"`
}

// DeliveryAddressResponse the address snapshot on the order.
type DeliveryAddressResponse struct {
	Label       string `json:"label"`
	FullAddress string `json:"fullAddress"`
	Building    string `json:"building,omitempty"`
	Room        string `json:"room,omitempty"`
	Note        string `json:"note,omitempty"`
}

// OrderResponse the full order view. ShipperID marshals as an explicit null
// while unassigned.
type OrderResponse struct {
	ID              string                  `json:"id"`
	OrderNumber     string                  `json:"orderNumber"`
	CustomerID      string                  `json:"customerId"`
	ShopID          string                  `json:"shopId"`
	ShopName        string                  `json:"shopName"`
	ShipperID       *string                 `json:"shipperId"`
	Items           []OrderItemResponse     `json:"items"`
	Subtotal        int64                   `json:"subtotal"`
	ShipFee         int64                   `json:"shipFee"`
	Discount        int64                   `json:"discount"`
	Total           int64                   `json:"total"`
	Currency        string                  `json:"currency"`
	Status          string                  `json:"status"`
	PaymentStatus   string                  `json:"paymentStatus"`
	PaymentMethod   string                  `json:"paymentMethod"`
	VoucherCode     string                  `json:"voucherCode,omitempty"`
	DeliveryAddress DeliveryAddressResponse `json:"deliveryAddress"`
	CancelReason    string                  `json:"cancelReason,omitempty"`
	CancelledBy     string                  `json:"cancelledBy,omitempty"`
	CancelledAt     *time.Time              `json:"cancelledAt,omitempty"`
	ConfirmedAt     *time.Time              `json:"confirmedAt,omitempty"`
	PreparingAt     *time.Time              `json:"preparingAt,omitempty"`
	ReadyAt         *time.Time              `json:"readyAt,omitempty"`
	ShippingAt      *time.Time              `json:"shippingAt,omitempty"`
	DeliveredAt     *time.Time              `json:"deliveredAt,omitempty"`
	ReviewID        *string                 `json:"reviewId,omitempty"`
	ReviewedAt      *time.Time              `json:"reviewedAt,omitempty"`
	PaidOut         bool                    `json:"paidOut"`
	PaidOutAt       *time.Time              `json:"paidOutAt,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// PagedOrdersResponse a page of orders plus the pagination fields the
// envelope flattens into the payload.
type PagedOrdersResponse struct {
	Orders     []*OrderResponse `json:"orders"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"totalPages"`
}
