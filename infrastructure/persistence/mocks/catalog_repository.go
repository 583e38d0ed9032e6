package mocks

import (
	"context"
	"sync"

	"foody/domain/catalog"
	"foody/domain/shared"
	"foody/domain/voucher"
)

// CatalogRepository in-memory catalog with products, shops and the stats
// aggregates. Seed data through AddProduct/AddShop.
type CatalogRepository struct {
	mu       sync.RWMutex
	products map[string]catalog.ProductReconstructionDTO
	shops    map[string]catalog.ShopReconstructionDTO
	byOwner  map[string]string
}

// NewCatalogRepository creates an empty in-memory catalog.
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		products: make(map[string]catalog.ProductReconstructionDTO),
		shops:    make(map[string]catalog.ShopReconstructionDTO),
		byOwner:  make(map[string]string),
	}
}

// AddProduct seeds or replaces a product.
func (r *CatalogRepository) AddProduct(dto catalog.ProductReconstructionDTO) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[dto.ID] = dto
}

// AddShop seeds or replaces a shop.
func (r *CatalogRepository) AddShop(dto catalog.ShopReconstructionDTO) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shops[dto.ID] = dto
	r.byOwner[dto.OwnerID] = dto.ID
}

// FindByID returns the product, soft-deleted included.
func (r *CatalogRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.products[id]
	if !ok {
		return nil, catalog.NewProductNotFoundError(id)
	}
	return catalog.RebuildProduct(dto), nil
}

// FindByIDs batch product lookup; absent ids are missing from the result.
func (r *CatalogRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make(map[string]*catalog.Product, len(ids))
	for _, id := range ids {
		if dto, ok := r.products[id]; ok {
			products[id] = catalog.RebuildProduct(dto)
		}
	}
	return products, nil
}

// UpdateShopRating overwrites the shop's rating aggregate.
func (r *CatalogRepository) UpdateShopRating(ctx context.Context, shopID string, avg float64, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dto, ok := r.shops[shopID]
	if !ok {
		return catalog.NewShopNotFoundError(shopID)
	}
	dto.RatingAvg = avg
	dto.RatingCount = count
	r.shops[shopID] = dto
	return nil
}

// UpdateProductRating overwrites the product's rating aggregate.
func (r *CatalogRepository) UpdateProductRating(ctx context.Context, productID string, avg float64, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dto, ok := r.products[productID]
	if !ok {
		return catalog.NewProductNotFoundError(productID)
	}
	dto.RatingAvg = avg
	dto.RatingCount = count
	r.products[productID] = dto
	return nil
}

// IncrementShopDelivered bumps the shop's delivered-order counter.
func (r *CatalogRepository) IncrementShopDelivered(ctx context.Context, shopID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dto, ok := r.shops[shopID]
	if !ok {
		return catalog.NewShopNotFoundError(shopID)
	}
	dto.DeliveredCount++
	r.shops[shopID] = dto
	return nil
}

// IncrementProductSold bumps the product's sold counter.
func (r *CatalogRepository) IncrementProductSold(ctx context.Context, productID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dto, ok := r.products[productID]
	if !ok {
		return catalog.NewProductNotFoundError(productID)
	}
	dto.SoldCount += quantity
	r.products[productID] = dto
	return nil
}

var _ catalog.ProductReader = (*CatalogRepository)(nil)
var _ catalog.StatsWriter = (*CatalogRepository)(nil)

// ShopReader shop-keyed view over the same in-memory catalog.
type ShopReader struct {
	catalog *CatalogRepository
}

// NewShopReader creates a shop reader over an in-memory catalog.
func NewShopReader(c *CatalogRepository) *ShopReader {
	return &ShopReader{catalog: c}
}

// FindByID returns the shop or ErrShopNotFound.
func (r *ShopReader) FindByID(ctx context.Context, id string) (*catalog.Shop, error) {
	r.catalog.mu.RLock()
	defer r.catalog.mu.RUnlock()

	dto, ok := r.catalog.shops[id]
	if !ok {
		return nil, catalog.NewShopNotFoundError(id)
	}
	return catalog.RebuildShop(dto), nil
}

// FindByIDs batch shop lookup; absent ids are missing from the result.
func (r *ShopReader) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Shop, error) {
	r.catalog.mu.RLock()
	defer r.catalog.mu.RUnlock()

	shops := make(map[string]*catalog.Shop, len(ids))
	for _, id := range ids {
		if dto, ok := r.catalog.shops[id]; ok {
			shops[id] = catalog.RebuildShop(dto)
		}
	}
	return shops, nil
}

// FindByOwnerID returns the shop owned by the user. One shop per owner.
func (r *ShopReader) FindByOwnerID(ctx context.Context, ownerID string) (*catalog.Shop, error) {
	r.catalog.mu.RLock()
	defer r.catalog.mu.RUnlock()

	shopID, ok := r.catalog.byOwner[ownerID]
	if !ok {
		return nil, catalog.NewShopNotFoundError(ownerID)
	}
	return catalog.RebuildShop(r.catalog.shops[shopID]), nil
}

var _ catalog.ShopReader = (*ShopReader)(nil)

// VoucherValidator in-memory voucher validation. Configure Discounts by
// code; unknown codes fail, empty codes grant zero discount.
type VoucherValidator struct {
	mu        sync.RWMutex
	Discounts map[string]shared.Money
}

// NewVoucherValidator creates an empty voucher validator.
func NewVoucherValidator() *VoucherValidator {
	return &VoucherValidator{Discounts: make(map[string]shared.Money)}
}

// Validate resolves a code into its configured discount.
func (v *VoucherValidator) Validate(ctx context.Context, code, shopID string, subtotal shared.Money) (shared.Money, error) {
	if code == "" {
		return shared.VND(0), nil
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	discount, ok := v.Discounts[code]
	if !ok {
		return shared.Money{}, voucher.NewVoucherNotFoundError(code)
	}
	return discount, nil
}

var _ voucher.Validator = (*VoucherValidator)(nil)
