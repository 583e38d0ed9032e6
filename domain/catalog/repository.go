package catalog

import "context"

// ProductReader read-only product lookups used by cart and order flows.
type ProductReader interface {
	// FindByID returns the product or ErrProductNotFound.
	// Soft-deleted products are still returned so callers can distinguish
	// "never existed" from "no longer orderable".
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByIDs batch lookup; absent ids are simply missing from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*Product, error)
}

// ShopReader read-only shop lookups used by cart and order flows.
type ShopReader interface {
	// FindByID returns the shop or ErrShopNotFound.
	FindByID(ctx context.Context, id string) (*Shop, error)

	// FindByIDs batch lookup; absent ids are simply missing from the result.
	// The grouped cart view fetches each distinct shop exactly once through this.
	FindByIDs(ctx context.Context, ids []string) (map[string]*Shop, error)

	// FindByOwnerID returns the shop owned by the user or ErrShopNotFound.
	// One shop per owner.
	FindByOwnerID(ctx context.Context, ownerID string) (*Shop, error)
}

// StatsWriter rating/volume aggregates applied by the stats worker.
type StatsWriter interface {
	// UpdateShopRating overwrites the shop's rating aggregate.
	UpdateShopRating(ctx context.Context, shopID string, avg float64, count int) error

	// UpdateProductRating overwrites the product's rating aggregate.
	UpdateProductRating(ctx context.Context, productID string, avg float64, count int) error

	// IncrementShopDelivered bumps the shop's delivered-order counter.
	IncrementShopDelivered(ctx context.Context, shopID string) error

	// IncrementProductSold bumps sold counters for the delivered quantities.
	IncrementProductSold(ctx context.Context, productID string, quantity int) error
}
