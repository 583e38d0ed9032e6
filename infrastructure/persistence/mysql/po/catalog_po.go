package po

import (
	"time"

	"foody/domain/catalog"
	"foody/domain/shared"
)

// ProductPO catalog product row. The catalog is written by shop-owner
// tooling; this service only reads it and bumps rating/sold aggregates.
type ProductPO struct {
	ID          string    `gorm:"column:id;type:varchar(36);primaryKey"`
	ShopID      string    `gorm:"column:shop_id;type:varchar(36);not null;index:idx_products_shop"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"`
	Image       string    `gorm:"column:image;type:varchar(512)"`
	Price       int64     `gorm:"column:price;not null"`
	Currency    string    `gorm:"column:currency;type:varchar(8);not null"`
	Available   bool      `gorm:"column:available;not null;default:true"`
	Deleted     bool      `gorm:"column:deleted;not null;default:false"`
	RatingAvg   float64   `gorm:"column:rating_avg;not null;default:0"`
	RatingCount int       `gorm:"column:rating_count;not null;default:0"`
	SoldCount   int       `gorm:"column:sold_count;not null;default:0"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name
func (ProductPO) TableName() string {
	return "products"
}

// ToDomain converts the row to the catalog read model.
func (p *ProductPO) ToDomain() *catalog.Product {
	return catalog.RebuildProduct(catalog.ProductReconstructionDTO{
		ID:          p.ID,
		ShopID:      p.ShopID,
		Name:        p.Name,
		Image:       p.Image,
		Price:       *shared.NewMoney(p.Price, p.Currency),
		Available:   p.Available,
		Deleted:     p.Deleted,
		RatingAvg:   p.RatingAvg,
		RatingCount: p.RatingCount,
		SoldCount:   p.SoldCount,
		UpdatedAt:   p.UpdatedAt,
	})
}

// ShopPO catalog shop row.
type ShopPO struct {
	ID              string    `gorm:"column:id;type:varchar(36);primaryKey"`
	OwnerID         string    `gorm:"column:owner_id;type:varchar(36);not null;uniqueIndex:uk_shops_owner"`
	Name            string    `gorm:"column:name;type:varchar(255);not null"`
	Open            bool      `gorm:"column:open;not null;default:false"`
	Status          string    `gorm:"column:status;type:varchar(16);not null"`
	ShipFeePerOrder int64     `gorm:"column:ship_fee_per_order;not null"`
	Currency        string    `gorm:"column:currency;type:varchar(8);not null"`
	RatingAvg       float64   `gorm:"column:rating_avg;not null;default:0"`
	RatingCount     int       `gorm:"column:rating_count;not null;default:0"`
	DeliveredCount  int       `gorm:"column:delivered_count;not null;default:0"`
	UpdatedAt       time.Time `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name
func (ShopPO) TableName() string {
	return "shops"
}

// ToDomain converts the row to the catalog read model.
func (p *ShopPO) ToDomain() *catalog.Shop {
	return catalog.RebuildShop(catalog.ShopReconstructionDTO{
		ID:              p.ID,
		OwnerID:         p.OwnerID,
		Name:            p.Name,
		Open:            p.Open,
		Status:          catalog.ShopStatus(p.Status),
		ShipFeePerOrder: *shared.NewMoney(p.ShipFeePerOrder, p.Currency),
		RatingAvg:       p.RatingAvg,
		RatingCount:     p.RatingCount,
		DeliveredCount:  p.DeliveredCount,
		UpdatedAt:       p.UpdatedAt,
	})
}
