package order

import "context"

// ListFilter narrows role-scoped order listings. A nil Status means no
// status filtering; ShopID only applies to the available-orders listing.
type ListFilter struct {
	Status *Status
	ShopID string
}

// PageRequest is a 1-based page window.
type PageRequest struct {
	Page  int
	Limit int
}

func (p PageRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Page holds one window of orders plus the total match count.
type Page struct {
	Orders []*Order
	Total  int64
}

// Repository persists order aggregates. Save must enforce optimistic
// locking on the aggregate version and report stale writes as
// ErrConcurrentModification.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Order, error)
	Save(ctx context.Context, o *Order) error

	FindByCustomer(ctx context.Context, customerID string, filter ListFilter, page PageRequest) (*Page, error)
	FindByShop(ctx context.Context, shopID string, filter ListFilter, page PageRequest) (*Page, error)
	FindByShipper(ctx context.Context, shipperID string, filter ListFilter, page PageRequest) (*Page, error)

	// FindAvailable lists READY orders with no assigned shipper.
	FindAvailable(ctx context.Context, filter ListFilter, page PageRequest) (*Page, error)
}
