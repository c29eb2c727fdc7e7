// Package pricing computes order totals. Everything here is pure: the
// same lines and tax rate always produce the same totals, and nothing
// is rounded until a caller formats for display.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/tillworks/tillcore/internal/cart"
	"github.com/tillworks/tillcore/internal/catalog"
)

// Line is one priced order line.
type Line struct {
	UnitPrice decimal.Decimal
	Qty       int
}

// Totals holds the three figures of an order, unrounded.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Round2 returns the totals rounded to two decimal places, for display
// and receipt formatting only.
func (t Totals) Round2() Totals {
	return Totals{
		Subtotal: t.Subtotal.Round(2),
		Tax:      t.Tax.Round(2),
		Total:    t.Total.Round(2),
	}
}

// Compute derives subtotal, tax and total from the lines at the given
// tax rate.
func Compute(lines []Line, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	tax := subtotal.Mul(taxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// Quote resolves the cart against the catalog and computes its totals.
// Prices are taken from the catalog at call time, so a cart is always
// quoted at current prices.
func Quote(c *cart.Cart, store *catalog.Store, taxRate decimal.Decimal) (Totals, error) {
	cartLines := c.Lines()
	lines := make([]Line, 0, len(cartLines))
	for _, cartLine := range cartLines {
		item, err := store.Get(cartLine.ItemID)
		if err != nil {
			return Totals{}, err
		}
		lines = append(lines, Line{UnitPrice: item.Price, Qty: cartLine.Qty})
	}
	return Compute(lines, taxRate), nil
}
