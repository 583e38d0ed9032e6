package mysql

import (
	"foody/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema. Development convenience only;
// production schemas are managed with migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&po.CartPO{},
		&po.CartItemPO{},
		&po.OrderPO{},
		&po.OrderItemPO{},
		&po.ProductPO{},
		&po.ShopPO{},
		&po.ReviewPO{},
		&po.ReviewProductPO{},
		&po.VoucherPO{},
		&po.OutboxEventPO{},
	)
}
