package order

import (
	"regexp"
	"testing"
	"time"
)

var orderNumberPattern = regexp.MustCompile(`^OD\d{12}-\d{4}$`)

func TestNewOrderNumberFormat(t *testing.T) {
	at := time.Date(2025, 9, 1, 14, 32, 5, 0, time.UTC)
	number := NewOrderNumber(at)
	if !regexp.MustCompile(`^OD250901143205-\d{4}$`).MatchString(number) {
		t.Errorf("unexpected order number %q", number)
	}
}

func TestRefreshOrderNumber(t *testing.T) {
	o := newTestOrder(t)
	original := o.OrderNumber()
	if !orderNumberPattern.MatchString(original) {
		t.Fatalf("unexpected order number %q", original)
	}

	// The 4-digit suffix can repeat on a single draw; a different number
	// must show up well within 50.
	for i := 0; i < 50; i++ {
		o.RefreshOrderNumber()
		if !orderNumberPattern.MatchString(o.OrderNumber()) {
			t.Fatalf("refreshed order number %q has the wrong shape", o.OrderNumber())
		}
		if o.OrderNumber() != original {
			return
		}
	}
	t.Error("refresh never drew a different number")
}
