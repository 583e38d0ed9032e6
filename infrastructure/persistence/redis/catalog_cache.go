// Package redis provides a read-through cache for catalog lookups. Cart and
// order flows hit products and shops on every request; the catalog changes
// rarely, so a short TTL absorbs most of that read load.
//
// Cache failures degrade to the inner reader: a dead redis never blocks an
// order.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"foody/domain/catalog"
	"foody/domain/shared"
	"foody/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productKeyPrefix = "catalog:product:"
	shopKeyPrefix    = "catalog:shop:"
)

// cachedProduct flat JSON form of a catalog product.
type cachedProduct struct {
	ID          string    `json:"id"`
	ShopID      string    `json:"shopId"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	Price       int64     `json:"price"`
	Currency    string    `json:"currency"`
	Available   bool      `json:"available"`
	Deleted     bool      `json:"deleted"`
	RatingAvg   float64   `json:"ratingAvg"`
	RatingCount int       `json:"ratingCount"`
	SoldCount   int       `json:"soldCount"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// cachedShop flat JSON form of a catalog shop.
type cachedShop struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"ownerId"`
	Name            string    `json:"name"`
	Open            bool      `json:"open"`
	Status          string    `json:"status"`
	ShipFeePerOrder int64     `json:"shipFeePerOrder"`
	Currency        string    `json:"currency"`
	RatingAvg       float64   `json:"ratingAvg"`
	RatingCount     int       `json:"ratingCount"`
	DeliveredCount  int       `json:"deliveredCount"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CachedProductReader read-through cache over a catalog.ProductReader.
type CachedProductReader struct {
	inner  catalog.ProductReader
	client *redis.Client
	ttl    time.Duration
}

// NewCachedProductReader wraps a product reader with a redis cache.
func NewCachedProductReader(inner catalog.ProductReader, client *redis.Client, ttl time.Duration) *CachedProductReader {
	return &CachedProductReader{inner: inner, client: client, ttl: ttl}
}

// FindByID returns the product from cache or the inner reader.
// Not-found results are never cached: absence must stay authoritative.
func (r *CachedProductReader) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	if cached, ok := r.get(ctx, id); ok {
		return cached, nil
	}

	product, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.set(ctx, product)
	return product, nil
}

// FindByIDs serves hits from cache and batches the misses to the inner
// reader.
func (r *CachedProductReader) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Product, error) {
	products := make(map[string]*catalog.Product, len(ids))
	var misses []string
	for _, id := range ids {
		if cached, ok := r.get(ctx, id); ok {
			products[id] = cached
		} else {
			misses = append(misses, id)
		}
	}
	if len(misses) == 0 {
		return products, nil
	}

	loaded, err := r.inner.FindByIDs(ctx, misses)
	if err != nil {
		return nil, err
	}
	for id, product := range loaded {
		products[id] = product
		r.set(ctx, product)
	}
	return products, nil
}

func (r *CachedProductReader) get(ctx context.Context, id string) (*catalog.Product, bool) {
	data, err := r.client.Get(ctx, productKeyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Product cache read failed", zap.String("product_id", id), zap.Error(err))
		}
		return nil, false
	}

	var cached cachedProduct
	if err := json.Unmarshal(data, &cached); err != nil {
		logger.Warn("Product cache entry corrupt", zap.String("product_id", id), zap.Error(err))
		return nil, false
	}

	return catalog.RebuildProduct(catalog.ProductReconstructionDTO{
		ID:          cached.ID,
		ShopID:      cached.ShopID,
		Name:        cached.Name,
		Image:       cached.Image,
		Price:       *shared.NewMoney(cached.Price, cached.Currency),
		Available:   cached.Available,
		Deleted:     cached.Deleted,
		RatingAvg:   cached.RatingAvg,
		RatingCount: cached.RatingCount,
		SoldCount:   cached.SoldCount,
		UpdatedAt:   cached.UpdatedAt,
	}), true
}

func (r *CachedProductReader) set(ctx context.Context, product *catalog.Product) {
	data, err := json.Marshal(cachedProduct{
		ID:          product.ID(),
		ShopID:      product.ShopID(),
		Name:        product.Name(),
		Image:       product.Image(),
		Price:       product.Price().Amount(),
		Currency:    product.Price().Currency(),
		Available:   product.Available(),
		Deleted:     product.Deleted(),
		RatingAvg:   product.RatingAvg(),
		RatingCount: product.RatingCount(),
		SoldCount:   product.SoldCount(),
		UpdatedAt:   product.UpdatedAt(),
	})
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, productKeyPrefix+product.ID(), data, r.ttl).Err(); err != nil {
		logger.Warn("Product cache write failed", zap.String("product_id", product.ID()), zap.Error(err))
	}
}

var _ catalog.ProductReader = (*CachedProductReader)(nil)

// CachedShopReader read-through cache over a catalog.ShopReader.
//
// Owner lookups bypass the cache: they are rare (shop-owner order listings)
// and keying the same shop by two ids invites staleness bugs.
type CachedShopReader struct {
	inner  catalog.ShopReader
	client *redis.Client
	ttl    time.Duration
}

// NewCachedShopReader wraps a shop reader with a redis cache.
func NewCachedShopReader(inner catalog.ShopReader, client *redis.Client, ttl time.Duration) *CachedShopReader {
	return &CachedShopReader{inner: inner, client: client, ttl: ttl}
}

// FindByID returns the shop from cache or the inner reader.
func (r *CachedShopReader) FindByID(ctx context.Context, id string) (*catalog.Shop, error) {
	if cached, ok := r.get(ctx, id); ok {
		return cached, nil
	}

	shop, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.set(ctx, shop)
	return shop, nil
}

// FindByIDs serves hits from cache and batches the misses.
func (r *CachedShopReader) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Shop, error) {
	shops := make(map[string]*catalog.Shop, len(ids))
	var misses []string
	for _, id := range ids {
		if cached, ok := r.get(ctx, id); ok {
			shops[id] = cached
		} else {
			misses = append(misses, id)
		}
	}
	if len(misses) == 0 {
		return shops, nil
	}

	loaded, err := r.inner.FindByIDs(ctx, misses)
	if err != nil {
		return nil, err
	}
	for id, shop := range loaded {
		shops[id] = shop
		r.set(ctx, shop)
	}
	return shops, nil
}

// FindByOwnerID goes straight to the inner reader.
func (r *CachedShopReader) FindByOwnerID(ctx context.Context, ownerID string) (*catalog.Shop, error) {
	return r.inner.FindByOwnerID(ctx, ownerID)
}

func (r *CachedShopReader) get(ctx context.Context, id string) (*catalog.Shop, bool) {
	data, err := r.client.Get(ctx, shopKeyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Shop cache read failed", zap.String("shop_id", id), zap.Error(err))
		}
		return nil, false
	}

	var cached cachedShop
	if err := json.Unmarshal(data, &cached); err != nil {
		logger.Warn("Shop cache entry corrupt", zap.String("shop_id", id), zap.Error(err))
		return nil, false
	}

	return catalog.RebuildShop(catalog.ShopReconstructionDTO{
		ID:              cached.ID,
		OwnerID:         cached.OwnerID,
		Name:            cached.Name,
		Open:            cached.Open,
		Status:          catalog.ShopStatus(cached.Status),
		ShipFeePerOrder: *shared.NewMoney(cached.ShipFeePerOrder, cached.Currency),
		RatingAvg:       cached.RatingAvg,
		RatingCount:     cached.RatingCount,
		DeliveredCount:  cached.DeliveredCount,
		UpdatedAt:       cached.UpdatedAt,
	}), true
}

func (r *CachedShopReader) set(ctx context.Context, shop *catalog.Shop) {
	data, err := json.Marshal(cachedShop{
		ID:              shop.ID(),
		OwnerID:         shop.OwnerID(),
		Name:            shop.Name(),
		Open:            shop.Open(),
		Status:          string(shop.Status()),
		ShipFeePerOrder: shop.ShipFeePerOrder().Amount(),
		Currency:        shop.ShipFeePerOrder().Currency(),
		RatingAvg:       shop.RatingAvg(),
		RatingCount:     shop.RatingCount(),
		DeliveredCount:  shop.DeliveredCount(),
		UpdatedAt:       shop.UpdatedAt(),
	})
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, shopKeyPrefix+shop.ID(), data, r.ttl).Err(); err != nil {
		logger.Warn("Shop cache write failed", zap.String("shop_id", shop.ID()), zap.Error(err))
	}
}

var _ catalog.ShopReader = (*CachedShopReader)(nil)
