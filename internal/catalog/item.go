package catalog

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/tillworks/tillcore/pkg/enums"
	pkgerrors "github.com/tillworks/tillcore/pkg/errors"
)

const (
	// DefaultUnit is assumed for products whose source row omits one.
	DefaultUnit = "pcs"
)

var validate = validator.New()

// StockInfo is the product-only payload of an Item. Non-tangible kinds
// (service, subscription, booking, digital) never carry one.
type StockInfo struct {
	OnHand int
	Unit   string
}

// Item is a catalog entry. Kind decides whether Stock is meaningful;
// it is nil for every kind except product.
type Item struct {
	ID          string `validate:"required"`
	Name        string `validate:"required"`
	Category    string
	Kind        enums.ItemKind
	Price       decimal.Decimal
	Description string
	Stock       *StockInfo
}

// OnHand returns the stock count, zero for untracked kinds.
func (i Item) OnHand() int {
	if i.Stock == nil {
		return 0
	}
	return i.Stock.OnHand
}

// Unit returns the unit of measure, empty for untracked kinds.
func (i Item) Unit() string {
	if i.Stock == nil {
		return ""
	}
	return i.Stock.Unit
}

// Clone returns a deep copy so callers cannot alias store state.
func (i Item) Clone() Item {
	out := i
	if i.Stock != nil {
		stock := *i.Stock
		out.Stock = &stock
	}
	return out
}

// Normalize applies the defaults the file formats allow to be omitted:
// kind falls back to product, products gain a zeroed StockInfo with the
// default unit, and untracked kinds drop any stray stock payload.
func (i Item) Normalize() Item {
	out := i.Clone()
	if out.Kind == "" {
		out.Kind = enums.ItemKindProduct
	}
	if out.Kind.Tracked() {
		if out.Stock == nil {
			out.Stock = &StockInfo{Unit: DefaultUnit}
		}
		if out.Stock.Unit == "" {
			out.Stock.Unit = DefaultUnit
		}
	} else {
		out.Stock = nil
	}
	return out
}

// Validate checks the invariants a catalog entry must satisfy. All
// problems are reported together rather than one at a time.
func (i Item) Validate() error {
	var errs error
	if err := validate.Struct(i); err != nil {
		errs = multierr.Append(errs, err)
	}
	if !i.Kind.IsValid() {
		errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "unknown item kind"))
	}
	if i.Price.IsNegative() {
		errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative"))
	}
	if i.Kind.Tracked() && i.Stock == nil {
		errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "product requires stock info"))
	}
	if !i.Kind.Tracked() && i.Stock != nil {
		errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "stock is only meaningful for products"))
	}
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid catalog item")
	}
	return nil
}
