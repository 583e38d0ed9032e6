package cart

import (
	"errors"
	"testing"
	"time"

	"foody/domain/shared"
)

func snapshot(productID, shopID string, price int64) ProductSnapshot {
	return ProductSnapshot{
		ProductID: productID,
		ShopID:    shopID,
		Name:      "product " + productID,
		Image:     "img/" + productID + ".jpg",
		Price:     shared.VND(price),
	}
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	c := NewCart("customer-1")

	if err := c.AddItem(snapshot("p1", "shop-1", 50000), 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := c.AddItem(snapshot("p1", "shop-1", 50000), 3); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Quantity() != 5 {
		t.Errorf("expected accumulated quantity 5, got %d", items[0].Quantity())
	}
}

func TestAddItemRefreshesSnapshotButKeepsAddedAt(t *testing.T) {
	c := NewCart("customer-1")

	if err := c.AddItem(snapshot("p1", "shop-1", 50000), 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	firstAddedAt := c.Items()[0].AddedAt()

	time.Sleep(2 * time.Millisecond)
	updated := snapshot("p1", "shop-1", 60000)
	updated.Name = "renamed product"
	if err := c.AddItem(updated, 1); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	item := c.Items()[0]
	if item.PriceAtAdd().Amount() != 60000 {
		t.Errorf("expected refreshed price 60000, got %d", item.PriceAtAdd().Amount())
	}
	if item.ProductName() != "renamed product" {
		t.Errorf("expected refreshed name, got %q", item.ProductName())
	}
	if !item.AddedAt().Equal(firstAddedAt) {
		t.Errorf("addedAt must keep the first add timestamp")
	}
	if !item.UpdatedAt().After(firstAddedAt) {
		t.Errorf("updatedAt must move forward on increment")
	}
}

func TestAddItemQuantityCeiling(t *testing.T) {
	tests := []struct {
		name    string
		first   int
		second  int
		wantErr error
		wantQty int
	}{
		{"exactly at limit", 500, 499, nil, 999},
		{"one over limit", 500, 500, ErrQuantityCeiling, 500},
		{"single add over limit", 1000, 0, ErrInvalidQuantity, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCart("customer-1")

			err := c.AddItem(snapshot("p1", "shop-1", 10000), tt.first)
			if tt.second > 0 {
				if err != nil {
					t.Fatalf("first add failed: %v", err)
				}
				err = c.AddItem(snapshot("p1", "shop-1", 10000), tt.second)
			}

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got := c.Items()[0].Quantity(); got != tt.wantQty {
					t.Errorf("expected quantity %d, got %d", tt.wantQty, got)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantQty > 0 && c.Items()[0].Quantity() != tt.wantQty {
				t.Errorf("failed add must not change quantity, got %d", c.Items()[0].Quantity())
			}
		})
	}
}

func TestSetItemQuantityOverwrites(t *testing.T) {
	c := NewCart("customer-1")
	if err := c.AddItem(snapshot("p1", "shop-1", 10000), 5); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := c.SetItemQuantity("p1", 2); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got := c.Items()[0].Quantity(); got != 2 {
		t.Errorf("expected overwrite to 2, got %d", got)
	}

	if err := c.SetItemQuantity("p2", 1); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound for absent product, got %v", err)
	}
	if err := c.SetItemQuantity("p1", 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity for zero, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	c := NewCart("customer-1")
	if err := c.AddItem(snapshot("p1", "shop-1", 10000), 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := c.RemoveItem("p1"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if !c.IsEmpty() {
		t.Error("cart should be empty after removing its only item")
	}
	if err := c.RemoveItem("p1"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound on second remove, got %v", err)
	}
}

func TestRemoveShopItems(t *testing.T) {
	c := NewCart("customer-1")
	for _, add := range []struct {
		productID string
		shopID    string
	}{
		{"p1", "shop-1"},
		{"p2", "shop-2"},
		{"p3", "shop-1"},
	} {
		if err := c.AddItem(snapshot(add.productID, add.shopID, 10000), 1); err != nil {
			t.Fatalf("add %s failed: %v", add.productID, err)
		}
	}

	if removed := c.RemoveShopItems("shop-1"); removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}
	if removed := c.RemoveShopItems("shop-1"); removed != 0 {
		t.Errorf("removing again must be a no-op, got %d", removed)
	}
	if len(c.Items()) != 1 || c.Items()[0].ProductID() != "p2" {
		t.Errorf("only shop-2 item should remain, got %+v", c.Items())
	}
}

func TestShopIDsFirstAppearanceOrder(t *testing.T) {
	c := NewCart("customer-1")
	for _, add := range []struct {
		productID string
		shopID    string
	}{
		{"p1", "shop-b"},
		{"p2", "shop-a"},
		{"p3", "shop-b"},
	} {
		if err := c.AddItem(snapshot(add.productID, add.shopID, 10000), 1); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	ids := c.ShopIDs()
	if len(ids) != 2 || ids[0] != "shop-b" || ids[1] != "shop-a" {
		t.Errorf("expected [shop-b shop-a], got %v", ids)
	}
}

func TestItemSubtotal(t *testing.T) {
	c := NewCart("customer-1")
	if err := c.AddItem(snapshot("p1", "shop-1", 25000), 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if got := c.Items()[0].Subtotal().Amount(); got != 75000 {
		t.Errorf("expected subtotal 75000, got %d", got)
	}
}

func TestRebuildFromDTOIsNotNew(t *testing.T) {
	c := NewCart("customer-1")
	if !c.IsNew() {
		t.Error("NewCart must be marked new")
	}

	rebuilt := RebuildFromDTO(ReconstructionDTO{
		CustomerID: "customer-1",
		Items:      c.Items(),
		Version:    3,
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	})
	if rebuilt.IsNew() {
		t.Error("rebuilt cart must not be marked new")
	}
	if rebuilt.Version() != 3 {
		t.Errorf("expected version 3, got %d", rebuilt.Version())
	}
}
