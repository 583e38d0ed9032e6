/*
Package voucher - discount voucher lookup and validation.

Vouchers are owned by another bounded context; order placement only needs
to validate a code and read its discount, so the aggregate here is a thin
read model.
*/
package voucher

import (
	"context"
	"time"

	"foody/domain/shared"
)

// DiscountType how the voucher's discount is computed.
type DiscountType string

const (
	DiscountFixed   DiscountType = "FIXED"
	DiscountPercent DiscountType = "PERCENT"
)

// Voucher is a read model of a discount code.
type Voucher struct {
	id             string
	code           string
	shopID         string // empty means platform-wide
	discountType   DiscountType
	discount       shared.Money
	percent        int
	maxDiscount    shared.Money
	minOrderAmount shared.Money
	startsAt       time.Time
	expiresAt      time.Time
	usageLimit     int
	usedCount      int
	active         bool
}

// ReconstructionDTO carries persisted state into the read model.
type ReconstructionDTO struct {
	ID             string
	Code           string
	ShopID         string
	DiscountType   DiscountType
	Discount       shared.Money
	Percent        int
	MaxDiscount    shared.Money
	MinOrderAmount shared.Money
	StartsAt       time.Time
	ExpiresAt      time.Time
	UsageLimit     int
	UsedCount      int
	Active         bool
}

func RebuildFromDTO(dto ReconstructionDTO) *Voucher {
	discountType := dto.DiscountType
	if discountType == "" {
		discountType = DiscountFixed
	}
	return &Voucher{
		id:             dto.ID,
		code:           dto.Code,
		shopID:         dto.ShopID,
		discountType:   discountType,
		discount:       dto.Discount,
		percent:        dto.Percent,
		maxDiscount:    dto.MaxDiscount,
		minOrderAmount: dto.MinOrderAmount,
		startsAt:       dto.StartsAt,
		expiresAt:      dto.ExpiresAt,
		usageLimit:     dto.UsageLimit,
		usedCount:      dto.UsedCount,
		active:         dto.Active,
	}
}

func (v *Voucher) ID() string                   { return v.id }
func (v *Voucher) Code() string                 { return v.code }
func (v *Voucher) ShopID() string               { return v.shopID }
func (v *Voucher) Type() DiscountType           { return v.discountType }
func (v *Voucher) Discount() shared.Money       { return v.discount }
func (v *Voucher) MinOrderAmount() shared.Money { return v.minOrderAmount }

// DiscountFor computes the discount granted for a subtotal. Percent vouchers
// take percent of the subtotal, capped at maxDiscount when one is set.
func (v *Voucher) DiscountFor(subtotal shared.Money) shared.Money {
	if v.discountType != DiscountPercent {
		return v.discount
	}

	granted := shared.VND(subtotal.Amount() * int64(v.percent) / 100)
	if v.maxDiscount.Amount() > 0 && granted.IsGreaterThan(v.maxDiscount) {
		return v.maxDiscount
	}
	return granted
}

// ValidateFor checks whether the voucher applies to an order of the given
// shop and subtotal at time now.
func (v *Voucher) ValidateFor(shopID string, subtotal shared.Money, now time.Time) error {
	if !v.active {
		return NewVoucherNotUsableError(v.code, "voucher is inactive")
	}
	if v.shopID != "" && v.shopID != shopID {
		return NewVoucherNotUsableError(v.code, "voucher does not apply to this shop")
	}
	if now.Before(v.startsAt) {
		return NewVoucherNotUsableError(v.code, "voucher is not active yet")
	}
	if now.After(v.expiresAt) {
		return NewVoucherNotUsableError(v.code, "voucher has expired")
	}
	if v.usageLimit > 0 && v.usedCount >= v.usageLimit {
		return NewVoucherNotUsableError(v.code, "voucher usage limit reached")
	}
	if subtotal.IsGreaterThanOrEqual(v.minOrderAmount) {
		return nil
	}
	return NewVoucherNotUsableError(v.code, "order subtotal is below the voucher minimum")
}

// Validator resolves a voucher code into the discount it grants for a
// specific shop and subtotal. Returns a zero Money discount when code is
// empty.
type Validator interface {
	Validate(ctx context.Context, code, shopID string, subtotal shared.Money) (shared.Money, error)
}
