// Package pricing computes quantity-break quotes. Pure functions, no store
// access.
package pricing

import (
	"github.com/shopspring/decimal"

	"wholesale-catalog/internal/models"
)

// Quote is the effective price for a requested quantity.
type Quote struct {
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	Currency  string
	Tiered    bool
}

// UnitPrice picks the minimum unit price among tiers whose minimum quantity
// is at or below qty; with no qualifying tier the base price applies. The
// second return reports whether a tier matched.
func UnitPrice(p *models.Product, qty int64) (decimal.Decimal, bool) {
	var best *decimal.Decimal
	for _, t := range p.PriceTiers {
		if t.MinQty > qty {
			continue
		}
		price := decimal.NewFromFloat(t.UnitPrice)
		if best == nil || price.LessThan(*best) {
			best = &price
		}
	}
	if best == nil {
		return decimal.NewFromFloat(p.BasePrice), false
	}
	return *best, true
}

// QuoteFor builds the full quote including tax when the product carries a
// tax rate.
func QuoteFor(p *models.Product, qty int64) Quote {
	unit, tiered := UnitPrice(p, qty)
	subtotal := unit.Mul(decimal.NewFromInt(qty))

	tax := decimal.Zero
	if p.TaxRate != nil {
		tax = subtotal.Mul(decimal.NewFromFloat(*p.TaxRate)).Round(2)
	}

	return Quote{
		Quantity:  qty,
		UnitPrice: unit,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal.Add(tax),
		Currency:  p.Currency,
		Tiered:    tiered,
	}
}
