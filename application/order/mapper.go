package order

import (
	"foody/domain/order"
)

func toOrderResponse(o *order.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = OrderItemResponse{
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Image:       item.Image(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Amount(),
			Subtotal:    item.Subtotal().Amount(),
		}
	}

	address := o.DeliveryAddress()
	return &OrderResponse{
		ID:            o.ID(),
		OrderNumber:   o.OrderNumber(),
		CustomerID:    o.CustomerID(),
		ShopID:        o.ShopID(),
		ShopName:      o.ShopName(),
		ShipperID:     o.ShipperID(),
		Items:         items,
		Subtotal:      o.Subtotal().Amount(),
		ShipFee:       o.ShipFee().Amount(),
		Discount:      o.Discount().Amount(),
		Total:         o.Total().Amount(),
		Currency:      o.Total().Currency(),
		Status:        string(o.Status()),
		PaymentStatus: string(o.PaymentStatus()),
		PaymentMethod: string(o.PaymentMethod()),
		VoucherCode:   o.VoucherCode(),
		DeliveryAddress: DeliveryAddressResponse{
			Label:       address.Label,
			FullAddress: address.FullAddress,
			Building:    address.Building,
			Room:        address.Room,
			Note:        address.Note,
		},
		CancelReason: o.CancelReason(),
		CancelledBy:  string(o.CancelledBy()),
		CancelledAt:  o.CancelledAt(),
		ConfirmedAt:  o.ConfirmedAt(),
		PreparingAt:  o.PreparingAt(),
		ReadyAt:      o.ReadyAt(),
		ShippingAt:   o.ShippingAt(),
		DeliveredAt:  o.DeliveredAt(),
		ReviewID:     o.ReviewID(),
		ReviewedAt:   o.ReviewedAt(),
		PaidOut:      o.PaidOut(),
		PaidOutAt:    o.PaidOutAt(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

func toPagedResponse(p *order.Page, page order.PageRequest) *PagedOrdersResponse {
	responses := make([]*OrderResponse, len(p.Orders))
	for i, o := range p.Orders {
		responses[i] = toOrderResponse(o)
	}

	return &PagedOrdersResponse{
		Orders:     responses,
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      p.Total,
		TotalPages: lastPage(p.Total, page.Limit),
	}
}

func lastPage(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
