package resolver

import "github.com/shopspring/decimal"

// ResolvedProduct is the normalized output of a successful resolution: a
// named, non-negatively priced product ready to become a cart line item.
type ResolvedProduct struct {
	Name     string
	Price    decimal.Decimal
	Category string
}
