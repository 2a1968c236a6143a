package domain

import (
	"errors"
	"testing"
)

func TestParseOrderStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    OrderStatus
		wantErr bool
	}{
		{in: "accepted", want: OrderStatusAccepted},
		{in: "Shipped", want: OrderStatusShipped},
		{in: "  DELIVERED ", want: OrderStatusDelivered},
		{in: "cancelled", want: OrderStatusCancelled},
		{in: "Order accepted", wantErr: true},
		{in: "", wantErr: true},
		{in: "refunded", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseOrderStatus(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("ParseOrderStatus(%q): expected invalid, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseOrderStatus(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseOrderStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusAccepted: {OrderStatusShipped, OrderStatusCancelled},
		OrderStatusShipped:  {OrderStatusDelivered, OrderStatusCancelled},
	}
	all := []OrderStatus{OrderStatusAccepted, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			if got := from.CanTransition(to); got != want {
				t.Fatalf("%s -> %s: got %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestSpecialPriceCents(t *testing.T) {
	cases := []struct {
		price    int64
		discount int
		want     int64
	}{
		{price: 10000, discount: 10, want: 9000},
		{price: 10000, discount: 0, want: 10000},
		{price: 44900, discount: 5, want: 42655},
		{price: 10000, discount: 100, want: 0},
	}
	for _, tc := range cases {
		if got := SpecialPriceCents(tc.price, tc.discount); got != tc.want {
			t.Fatalf("SpecialPriceCents(%d, %d) = %d, want %d", tc.price, tc.discount, got, tc.want)
		}
	}
}
