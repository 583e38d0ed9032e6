package mysql

import (
	"context"
	"errors"

	"foody/domain/catalog"
	"foody/infrastructure/persistence"
	"foody/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// CatalogRepository GORM implementation of the catalog read side plus the
// stats writer used by the outbox worker. Products and shops share one
// repository: they are views of the same externally-owned catalog.
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a catalog repository.
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID returns the product, soft-deleted included.
func (r *CatalogRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	var productPO po.ProductPO
	if err := r.getDB(ctx).Where("id = ?", id).First(&productPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.NewProductNotFoundError(id)
		}
		return nil, err
	}
	return productPO.ToDomain(), nil
}

// FindByIDs batch product lookup; absent ids are missing from the result.
func (r *CatalogRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Product, error) {
	products := make(map[string]*catalog.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	var productPOs []*po.ProductPO
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&productPOs).Error; err != nil {
		return nil, err
	}
	for _, productPO := range productPOs {
		products[productPO.ID] = productPO.ToDomain()
	}
	return products, nil
}

var _ catalog.ProductReader = (*CatalogRepository)(nil)

// ShopRepository shop-keyed view of the catalog tables.
type ShopRepository struct {
	db *gorm.DB
}

// NewShopRepository creates a shop reader over the catalog tables.
func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

func (r *ShopRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID returns the shop or ErrShopNotFound.
func (r *ShopRepository) FindByID(ctx context.Context, id string) (*catalog.Shop, error) {
	return r.findBy(ctx, "id", id)
}

// FindByOwnerID returns the shop owned by the user. One shop per owner.
func (r *ShopRepository) FindByOwnerID(ctx context.Context, ownerID string) (*catalog.Shop, error) {
	return r.findBy(ctx, "owner_id", ownerID)
}

func (r *ShopRepository) findBy(ctx context.Context, column string, value string) (*catalog.Shop, error) {
	var shopPO po.ShopPO
	if err := r.getDB(ctx).Where(column+" = ?", value).First(&shopPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.NewShopNotFoundError(value)
		}
		return nil, err
	}
	return shopPO.ToDomain(), nil
}

// FindByIDs batch shop lookup; absent ids are missing from the result.
func (r *ShopRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Shop, error) {
	shops := make(map[string]*catalog.Shop, len(ids))
	if len(ids) == 0 {
		return shops, nil
	}

	var shopPOs []*po.ShopPO
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&shopPOs).Error; err != nil {
		return nil, err
	}
	for _, shopPO := range shopPOs {
		shops[shopPO.ID] = shopPO.ToDomain()
	}
	return shops, nil
}

var _ catalog.ShopReader = (*ShopRepository)(nil)

// StatsRepository applies rating and volume aggregates. Only the outbox
// worker writes through it.
type StatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a stats writer over the catalog tables.
func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// UpdateShopRating overwrites the shop's rating aggregate.
func (r *StatsRepository) UpdateShopRating(ctx context.Context, shopID string, avg float64, count int) error {
	result := r.getDB(ctx).Model(&po.ShopPO{}).
		Where("id = ?", shopID).
		Updates(map[string]any{
			"rating_avg":   avg,
			"rating_count": count,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.NewShopNotFoundError(shopID)
	}
	return nil
}

// UpdateProductRating overwrites the product's rating aggregate.
func (r *StatsRepository) UpdateProductRating(ctx context.Context, productID string, avg float64, count int) error {
	result := r.getDB(ctx).Model(&po.ProductPO{}).
		Where("id = ?", productID).
		Updates(map[string]any{
			"rating_avg":   avg,
			"rating_count": count,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.NewProductNotFoundError(productID)
	}
	return nil
}

// IncrementShopDelivered bumps the shop's delivered-order counter.
func (r *StatsRepository) IncrementShopDelivered(ctx context.Context, shopID string) error {
	return r.getDB(ctx).Model(&po.ShopPO{}).
		Where("id = ?", shopID).
		Update("delivered_count", gorm.Expr("delivered_count + 1")).Error
}

// IncrementProductSold bumps the product's sold counter.
func (r *StatsRepository) IncrementProductSold(ctx context.Context, productID string, quantity int) error {
	return r.getDB(ctx).Model(&po.ProductPO{}).
		Where("id = ?", productID).
		Update("sold_count", gorm.Expr("sold_count + ?", quantity)).Error
}

var _ catalog.StatsWriter = (*StatsRepository)(nil)
