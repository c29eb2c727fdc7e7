// Package ledger owns the append-only sales log. Records are written
// once at checkout and never mutated; reporting reads them back.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillworks/tillcore/pkg/enums"
)

// SaleLine is a frozen copy of one cart line at the moment of sale.
// Copying, not referencing, keeps historical receipts immune to later
// catalog edits.
type SaleLine struct {
	ItemID    string
	Name      string
	Qty       int
	UnitPrice decimal.Decimal
	Kind      enums.ItemKind
	Unit      string
}

// LineTotal is the extended price of the line.
func (l SaleLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// Sale is one completed transaction. Total is always subtotal plus
// tax, and change is tendered minus total; both are enforced before a
// Sale is ever constructed.
type Sale struct {
	ID        uuid.UUID
	Timestamp time.Time
	Lines     []SaleLine
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	Tendered  decimal.Decimal
	Change    decimal.Decimal
}

// Day returns the date portion of the sale timestamp, the grouping key
// for daily reporting.
func (s *Sale) Day() string {
	return s.Timestamp.Format("2006-01-02")
}
