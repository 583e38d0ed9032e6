package review

import "context"

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

// Page holds one window of reviews plus the total match count.
type Page struct {
	Reviews []*Review
	Total   int64
}

// Repository persists reviews. Save inserts new reviews only; reviews are
// immutable once written.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Review, error)
	FindByOrderID(ctx context.Context, orderID string) (*Review, error)
	FindByShop(ctx context.Context, shopID string, page PageRequest) (*Page, error)
	Save(ctx context.Context, r *Review) error
}
