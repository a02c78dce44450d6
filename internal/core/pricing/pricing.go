package pricing

import "github.com/shopspring/decimal"

// TaxRate is the flat 12% VAT applied to every order. Not configurable
// per-order or per-product.
var TaxRate = decimal.RequireFromString("0.12")

// Line is a priced quantity. Quantity below 1 is rejected by callers before
// it reaches this package.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

type Totals struct {
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	ShippingCost   decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// LineTotal is unit price times quantity, exact in minor units.
func LineTotal(l Line) decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineTax is the per-unit tax recorded on order item snapshots.
func LineTax(l Line) decimal.Decimal {
	return l.UnitPrice.Mul(TaxRate).Round(2)
}

// Summarize derives order totals from line items. Shipping is flat zero and
// no discount engine is wired in, so total = subtotal + tax. An empty line
// list yields all-zero totals.
func Summarize(lines []Line) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineTotal(l))
	}

	tax := subtotal.Mul(TaxRate).Round(2)
	shipping := decimal.Zero
	discount := decimal.Zero

	return Totals{
		Subtotal:       subtotal,
		Tax:            tax,
		ShippingCost:   shipping,
		DiscountAmount: discount,
		Total:          subtotal.Add(tax).Add(shipping).Sub(discount),
	}
}
