package receipt

import (
	"github.com/shopspring/decimal"

	"github.com/yusufhadi/smartpos-backend/internal/cart"
)

// Receipt carries the derived totals for a cart at full precision. Rounding
// to currency minor units happens only at the presentation boundary via
// Display, never inside the computation.
type Receipt struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Display is a receipt rounded to two decimal places for rendering.
type Display struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

// Compute derives subtotal, tax and total from the given line items. It is a
// pure function of its inputs: callers recompute after every cart mutation
// instead of caching.
func Compute(items []cart.LineItem, taxRate decimal.Decimal) Receipt {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	tax := subtotal.Mul(taxRate)
	return Receipt{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// Display rounds each amount to two decimal places.
func (r Receipt) Display() Display {
	return Display{
		Subtotal: r.Subtotal.StringFixed(2),
		Tax:      r.Tax.StringFixed(2),
		Total:    r.Total.StringFixed(2),
	}
}
