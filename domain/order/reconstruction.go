package order

import (
	"time"

	"foody/domain/shared"
)

// ReconstructionDTO rebuilds an Order from storage.
// Repository-layer use only; never populated from request input.
type ReconstructionDTO struct {
	ID              string
	OrderNumber     string
	CustomerID      string
	ShopID          string
	ShopName        string
	ShipperID       *string
	Items           []Item
	Subtotal        shared.Money
	ShipFee         shared.Money
	Discount        shared.Money
	Total           shared.Money
	Status          Status
	PaymentStatus   PaymentStatus
	PaymentMethod   PaymentMethod
	VoucherCode     string
	DeliveryAddress DeliveryAddress
	CancelReason    string
	CancelledBy     CancelledBy
	CancelledAt     *time.Time
	ConfirmedAt     *time.Time
	PreparingAt     *time.Time
	ReadyAt         *time.Time
	ShippingAt      *time.Time
	DeliveredAt     *time.Time
	ReviewID        *string
	ReviewedAt      *time.Time
	PaidOut         bool
	PaidOutAt       *time.Time
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RebuildFromDTO reconstructs an Order aggregate from a DTO.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:              dto.ID,
		orderNumber:     dto.OrderNumber,
		customerID:      dto.CustomerID,
		shopID:          dto.ShopID,
		shopName:        dto.ShopName,
		shipperID:       dto.ShipperID,
		items:           dto.Items,
		subtotal:        dto.Subtotal,
		shipFee:         dto.ShipFee,
		discount:        dto.Discount,
		total:           dto.Total,
		status:          dto.Status,
		paymentStatus:   dto.PaymentStatus,
		paymentMethod:   dto.PaymentMethod,
		voucherCode:     dto.VoucherCode,
		deliveryAddress: dto.DeliveryAddress,
		cancelReason:    dto.CancelReason,
		cancelledBy:     dto.CancelledBy,
		cancelledAt:     dto.CancelledAt,
		confirmedAt:     dto.ConfirmedAt,
		preparingAt:     dto.PreparingAt,
		readyAt:         dto.ReadyAt,
		shippingAt:      dto.ShippingAt,
		deliveredAt:     dto.DeliveredAt,
		reviewID:        dto.ReviewID,
		reviewedAt:      dto.ReviewedAt,
		paidOut:         dto.PaidOut,
		paidOutAt:       dto.PaidOutAt,
		version:         dto.Version,
		createdAt:       dto.CreatedAt,
		updatedAt:       dto.UpdatedAt,
		events:          nil,
		isNew:           false,
	}
}

// ItemReconstructionDTO rebuilds an order line from storage.
type ItemReconstructionDTO struct {
	ProductID   string
	ProductName string
	Image       string
	Quantity    int
	UnitPrice   shared.Money
	Subtotal    shared.Money
}

// RebuildItemFromDTO reconstructs an Item from a DTO.
func RebuildItemFromDTO(dto ItemReconstructionDTO) Item {
	return Item{
		productID:   dto.ProductID,
		productName: dto.ProductName,
		image:       dto.Image,
		quantity:    dto.Quantity,
		unitPrice:   dto.UnitPrice,
		subtotal:    dto.Subtotal,
	}
}
