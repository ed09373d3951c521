package estimate

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Totals holds the derived amounts of an estimate.
type Totals struct {
	Subtotal          float64 `json:"total_amount"`
	TaxRate           float64 `json:"tax_rate"`
	TaxAmount         float64 `json:"tax_amount"`
	FinalAmount       float64 `json:"final_amount"`
	DiscountAmount    float64 `json:"discount_amount"`
	PreDiscountAmount float64 `json:"pre_discount_amount"`
	NegotiationRate   int     `json:"negotiation_rate"`
}

// Aggregate derives the estimate totals from items. Discount items are
// subtracted from the subtotal; tax is taken on the subtotal after discounts.
func Aggregate(items []Item, taxRate float64) Totals {
	var (
		pre      = decimal.Zero
		discount = decimal.Zero
	)
	for _, it := range items {
		price := decimal.NewFromFloat(it.TotalPrice)
		if it.IsDiscount {
			discount = discount.Add(price)
		} else {
			pre = pre.Add(price)
		}
	}

	subtotal := pre.Sub(discount)
	rate := decimal.NewFromFloat(taxRate)
	tax := subtotal.Mul(rate).Div(hundred)
	final := subtotal.Add(tax)

	return Totals{
		Subtotal:          subtotal.InexactFloat64(),
		TaxRate:           taxRate,
		TaxAmount:         tax.InexactFloat64(),
		FinalAmount:       final.InexactFloat64(),
		DiscountAmount:    discount.InexactFloat64(),
		PreDiscountAmount: pre.InexactFloat64(),
		NegotiationRate:   NegotiationRate(discount, pre),
	}
}

// NegotiationRate is the discount as a whole percentage of the pre-discount
// amount, rounded half up. It is 0 when there is nothing to discount from.
func NegotiationRate(discount, preDiscount decimal.Decimal) int {
	if !preDiscount.IsPositive() {
		return 0
	}
	pct := discount.Div(preDiscount).Mul(hundred)
	// half-up toward +inf, matching the editor's rounding of the ratio
	return int(pct.Add(decimal.NewFromFloat(0.5)).Floor().IntPart())
}
