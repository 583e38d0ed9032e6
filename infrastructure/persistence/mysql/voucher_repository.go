package mysql

import (
	"context"
	"errors"
	"time"

	"foody/domain/shared"
	"foody/domain/voucher"
	"foody/infrastructure/persistence"
	"foody/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// VoucherRepository GORM-backed voucher validator. Order placement is the
// only caller; usage counters are owned by the voucher context and not
// written here.
type VoucherRepository struct {
	db *gorm.DB
}

// NewVoucherRepository creates a voucher repository.
func NewVoucherRepository(db *gorm.DB) *VoucherRepository {
	return &VoucherRepository{db: db}
}

func (r *VoucherRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Validate resolves a voucher code into the discount it grants. An empty
// code grants a zero discount.
func (r *VoucherRepository) Validate(ctx context.Context, code, shopID string, subtotal shared.Money) (shared.Money, error) {
	if code == "" {
		return shared.VND(0), nil
	}

	var voucherPO po.VoucherPO
	if err := r.getDB(ctx).Where("code = ?", code).First(&voucherPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.Money{}, voucher.NewVoucherNotFoundError(code)
		}
		return shared.Money{}, err
	}

	v := voucherPO.ToDomain()
	if err := v.ValidateFor(shopID, subtotal, time.Now()); err != nil {
		return shared.Money{}, err
	}
	return v.DiscountFor(subtotal), nil
}

var _ voucher.Validator = (*VoucherRepository)(nil)
