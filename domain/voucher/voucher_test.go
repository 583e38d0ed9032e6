package voucher

import (
	"errors"
	"testing"
	"time"

	"foody/domain/shared"
)

func testVoucher(shopID string, active bool) *Voucher {
	now := time.Now()
	return RebuildFromDTO(ReconstructionDTO{
		ID:             "voucher-1",
		Code:           "SALE10",
		ShopID:         shopID,
		Discount:       shared.VND(10000),
		MinOrderAmount: shared.VND(50000),
		StartsAt:       now.Add(-time.Hour),
		ExpiresAt:      now.Add(time.Hour),
		UsageLimit:     100,
		UsedCount:      10,
		Active:         active,
	})
}

func TestValidateFor(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name     string
		voucher  *Voucher
		shopID   string
		subtotal shared.Money
		at       time.Time
		wantErr  error
	}{
		{
			name:     "platform-wide voucher applies to any shop",
			voucher:  testVoucher("", true),
			shopID:   "shop-9",
			subtotal: shared.VND(60000),
			at:       now,
		},
		{
			name:     "shop voucher applies to its shop",
			voucher:  testVoucher("shop-1", true),
			shopID:   "shop-1",
			subtotal: shared.VND(60000),
			at:       now,
		},
		{
			name:     "shop voucher rejects another shop",
			voucher:  testVoucher("shop-1", true),
			shopID:   "shop-2",
			subtotal: shared.VND(60000),
			at:       now,
			wantErr:  ErrVoucherNotUsable,
		},
		{
			name:     "inactive voucher",
			voucher:  testVoucher("", false),
			shopID:   "shop-1",
			subtotal: shared.VND(60000),
			at:       now,
			wantErr:  ErrVoucherNotUsable,
		},
		{
			name:     "not started yet",
			voucher:  testVoucher("", true),
			shopID:   "shop-1",
			subtotal: shared.VND(60000),
			at:       now.Add(-2 * time.Hour),
			wantErr:  ErrVoucherNotUsable,
		},
		{
			name:     "expired",
			voucher:  testVoucher("", true),
			shopID:   "shop-1",
			subtotal: shared.VND(60000),
			at:       now.Add(2 * time.Hour),
			wantErr:  ErrVoucherNotUsable,
		},
		{
			name:     "subtotal below minimum",
			voucher:  testVoucher("", true),
			shopID:   "shop-1",
			subtotal: shared.VND(49999),
			at:       now,
			wantErr:  ErrVoucherNotUsable,
		},
		{
			name:     "subtotal exactly at minimum",
			voucher:  testVoucher("", true),
			shopID:   "shop-1",
			subtotal: shared.VND(50000),
			at:       now,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.voucher.ValidateFor(tc.shopID, tc.subtotal, tc.at)
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("expected voucher to be usable, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestDiscountFor(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name     string
		dto      ReconstructionDTO
		subtotal shared.Money
		want     int64
	}{
		{
			name: "fixed amount",
			dto: ReconstructionDTO{
				Code:         "FLAT10K",
				DiscountType: DiscountFixed,
				Discount:     shared.VND(10000),
			},
			subtotal: shared.VND(200000),
			want:     10000,
		},
		{
			name: "percent of subtotal",
			dto: ReconstructionDTO{
				Code:         "SALE10P",
				DiscountType: DiscountPercent,
				Percent:      10,
			},
			subtotal: shared.VND(200000),
			want:     20000,
		},
		{
			name: "percent capped at max discount",
			dto: ReconstructionDTO{
				Code:         "SALE50P",
				DiscountType: DiscountPercent,
				Percent:      50,
				MaxDiscount:  shared.VND(30000),
			},
			subtotal: shared.VND(200000),
			want:     30000,
		},
		{
			name: "missing type defaults to fixed",
			dto: ReconstructionDTO{
				Code:     "LEGACY",
				Discount: shared.VND(5000),
			},
			subtotal: shared.VND(100000),
			want:     5000,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.dto.StartsAt = now.Add(-time.Hour)
			tc.dto.ExpiresAt = now.Add(time.Hour)
			tc.dto.Active = true

			v := RebuildFromDTO(tc.dto)
			if got := v.DiscountFor(tc.subtotal).Amount(); got != tc.want {
				t.Errorf("expected discount %d, got %d", tc.want, got)
			}
		})
	}
}

func TestValidateForUsageLimit(t *testing.T) {
	now := time.Now()
	exhausted := RebuildFromDTO(ReconstructionDTO{
		Code:           "GONE",
		Discount:       shared.VND(5000),
		MinOrderAmount: shared.VND(0),
		StartsAt:       now.Add(-time.Hour),
		ExpiresAt:      now.Add(time.Hour),
		UsageLimit:     5,
		UsedCount:      5,
		Active:         true,
	})
	if err := exhausted.ValidateFor("shop-1", shared.VND(10000), now); !errors.Is(err, ErrVoucherNotUsable) {
		t.Errorf("expected ErrVoucherNotUsable once the limit is reached, got %v", err)
	}

	unlimited := RebuildFromDTO(ReconstructionDTO{
		Code:           "FOREVER",
		Discount:       shared.VND(5000),
		MinOrderAmount: shared.VND(0),
		StartsAt:       now.Add(-time.Hour),
		ExpiresAt:      now.Add(time.Hour),
		UsageLimit:     0,
		UsedCount:      99999,
		Active:         true,
	})
	if err := unlimited.ValidateFor("shop-1", shared.VND(10000), now); err != nil {
		t.Errorf("zero usage limit means unlimited, got %v", err)
	}
}
