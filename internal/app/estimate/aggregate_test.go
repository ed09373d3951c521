package estimate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAggregate_DiscountExample(t *testing.T) {
	items := []Item{
		{ID: "a", TotalPrice: 500000},
		{ID: "b", TotalPrice: 100000, IsDiscount: true},
	}

	got := Aggregate(items, 10)
	want := Totals{
		Subtotal:          400000,
		TaxRate:           10,
		TaxAmount:         40000,
		FinalAmount:       440000,
		DiscountAmount:    100000,
		PreDiscountAmount: 500000,
		NegotiationRate:   20,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_TaxRates(t *testing.T) {
	items := []Item{
		{TotalPrice: 1200000},
		{TotalPrice: 800000},
		{TotalPrice: 200000, IsDiscount: true},
	}

	tests := []struct {
		rate      float64
		wantTax   float64
		wantFinal float64
	}{
		{0, 0, 1800000},
		{10, 180000, 1980000},
		{11, 198000, 1998000},
		{20, 360000, 2160000},
	}
	for _, tt := range tests {
		got := Aggregate(items, tt.rate)
		if got.Subtotal != 1800000 {
			t.Errorf("rate %v: subtotal = %v, want 1800000", tt.rate, got.Subtotal)
		}
		if got.TaxAmount != tt.wantTax {
			t.Errorf("rate %v: tax = %v, want %v", tt.rate, got.TaxAmount, tt.wantTax)
		}
		if got.FinalAmount != tt.wantFinal {
			t.Errorf("rate %v: final = %v, want %v", tt.rate, got.FinalAmount, tt.wantFinal)
		}
	}
}

func TestAggregate_SignedSum(t *testing.T) {
	items := []Item{
		{TotalPrice: 300000},
		{TotalPrice: 50000, IsDiscount: true},
		{TotalPrice: 700000},
		{TotalPrice: 0},
		{TotalPrice: 25000, IsDiscount: true},
	}
	got := Aggregate(items, 0)
	if got.Subtotal != 925000 {
		t.Fatalf("subtotal = %v, want 925000", got.Subtotal)
	}
	if got.PreDiscountAmount != 1000000 || got.DiscountAmount != 75000 {
		t.Fatalf("pre/discount = %v/%v", got.PreDiscountAmount, got.DiscountAmount)
	}
	// 75000 / 1000000 = 7.5% rounds up
	if got.NegotiationRate != 8 {
		t.Fatalf("negotiation rate = %d, want 8", got.NegotiationRate)
	}
}

func TestAggregate_NoDiscountMeansZeroNegotiation(t *testing.T) {
	got := Aggregate([]Item{{TotalPrice: 500000}, {TotalPrice: 100000}}, 10)
	if got.NegotiationRate != 0 {
		t.Fatalf("negotiation rate = %d, want 0", got.NegotiationRate)
	}
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil, 10)
	if diff := cmp.Diff(Totals{TaxRate: 10}, got); diff != "" {
		t.Fatalf("Aggregate(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_OnlyDiscounts(t *testing.T) {
	got := Aggregate([]Item{{TotalPrice: 100000, IsDiscount: true}}, 10)
	if got.Subtotal != -100000 || got.TaxAmount != -10000 || got.FinalAmount != -110000 {
		t.Fatalf("unexpected totals %+v", got)
	}
	if got.NegotiationRate != 0 {
		t.Fatalf("negotiation rate = %d, want 0", got.NegotiationRate)
	}
}
