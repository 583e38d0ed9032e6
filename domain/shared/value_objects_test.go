package shared

import "testing"

func TestMoneyArithmetic(t *testing.T) {
	a := VND(50000)
	b := VND(15000)

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if sum.Amount() != 65000 {
		t.Errorf("expected 65000, got %d", sum.Amount())
	}

	diff, err := a.Subtract(b)
	if err != nil {
		t.Fatalf("subtract failed: %v", err)
	}
	if diff.Amount() != 35000 {
		t.Errorf("expected 35000, got %d", diff.Amount())
	}

	product, err := b.Multiply(3)
	if err != nil {
		t.Fatalf("multiply failed: %v", err)
	}
	if product.Amount() != 45000 {
		t.Errorf("expected 45000, got %d", product.Amount())
	}
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	vnd := VND(1000)
	usd := NewMoney(1000, "USD")

	if _, err := vnd.Add(*usd); err == nil {
		t.Error("adding different currencies must fail")
	}
	if _, err := vnd.Subtract(*usd); err == nil {
		t.Error("subtracting different currencies must fail")
	}
}

func TestMoneyMultiplyGuards(t *testing.T) {
	if _, err := VND(1000).Multiply(-1); err == nil {
		t.Error("negative quantity must fail")
	}
	if _, err := VND(int64(1) << 40).Multiply(1 << 30); err == nil {
		t.Error("overflowing multiply must fail")
	}
	zero, err := VND(1000).Multiply(0)
	if err != nil {
		t.Fatalf("multiply by zero failed: %v", err)
	}
	if zero.Amount() != 0 {
		t.Errorf("expected 0, got %d", zero.Amount())
	}
}

func TestMoneyFloorZero(t *testing.T) {
	negative, err := VND(10000).Subtract(VND(25000))
	if err != nil {
		t.Fatalf("subtract failed: %v", err)
	}
	if floored := negative.FloorZero(); floored.Amount() != 0 {
		t.Errorf("expected floor at 0, got %d", floored.Amount())
	}
	if kept := VND(500).FloorZero(); kept.Amount() != 500 {
		t.Errorf("positive amounts pass through, got %d", kept.Amount())
	}
}

func TestMoneyComparisons(t *testing.T) {
	if !VND(2000).IsGreaterThan(VND(1000)) {
		t.Error("2000 > 1000")
	}
	if VND(1000).IsGreaterThan(VND(1000)) {
		t.Error("equal amounts are not greater")
	}
	if !VND(1000).IsGreaterThanOrEqual(VND(1000)) {
		t.Error("equal amounts satisfy >=")
	}
	if !VND(1000).Equals(VND(1000)) {
		t.Error("same amount and currency must be equal")
	}
	if VND(1000).Equals(*NewMoney(1000, "USD")) {
		t.Error("different currencies are never equal")
	}
}
