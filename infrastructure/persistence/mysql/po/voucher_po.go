package po

import (
	"time"

	"foody/domain/shared"
	"foody/domain/voucher"
)

// VoucherPO voucher row. Vouchers are maintained by another bounded
// context; this service only reads them during order placement.
type VoucherPO struct {
	ID             string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Code           string    `gorm:"column:code;type:varchar(64);not null;uniqueIndex:uk_vouchers_code"`
	ShopID         string    `gorm:"column:shop_id;type:varchar(36)"`
	DiscountType   string    `gorm:"column:discount_type;type:varchar(16);not null;default:FIXED"`
	Discount       int64     `gorm:"column:discount;not null"`
	Percent        int       `gorm:"column:percent;not null;default:0"`
	MaxDiscount    int64     `gorm:"column:max_discount;not null;default:0"`
	MinOrderAmount int64     `gorm:"column:min_order_amount;not null"`
	Currency       string    `gorm:"column:currency;type:varchar(8);not null"`
	StartsAt       time.Time `gorm:"column:starts_at;not null"`
	ExpiresAt      time.Time `gorm:"column:expires_at;not null"`
	UsageLimit     int       `gorm:"column:usage_limit;not null;default:0"`
	UsedCount      int       `gorm:"column:used_count;not null;default:0"`
	Active         bool      `gorm:"column:active;not null;default:true"`
}

// TableName specifies the table name
func (VoucherPO) TableName() string {
	return "vouchers"
}

// ToDomain converts the row to the voucher read model.
func (p *VoucherPO) ToDomain() *voucher.Voucher {
	return voucher.RebuildFromDTO(voucher.ReconstructionDTO{
		ID:             p.ID,
		Code:           p.Code,
		ShopID:         p.ShopID,
		DiscountType:   voucher.DiscountType(p.DiscountType),
		Discount:       *shared.NewMoney(p.Discount, p.Currency),
		Percent:        p.Percent,
		MaxDiscount:    *shared.NewMoney(p.MaxDiscount, p.Currency),
		MinOrderAmount: *shared.NewMoney(p.MinOrderAmount, p.Currency),
		StartsAt:       p.StartsAt,
		ExpiresAt:      p.ExpiresAt,
		UsageLimit:     p.UsageLimit,
		UsedCount:      p.UsedCount,
		Active:         p.Active,
	})
}
