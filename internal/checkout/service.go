package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillworks/tillcore/internal/cart"
	"github.com/tillworks/tillcore/internal/catalog"
	"github.com/tillworks/tillcore/internal/ledger"
	"github.com/tillworks/tillcore/internal/pricing"
	pkgerrors "github.com/tillworks/tillcore/pkg/errors"
	"github.com/tillworks/tillcore/pkg/logger"
)

type ledgerAppender interface {
	Append(path string, sale *ledger.Sale) error
}

// Config carries the register settings a checkout needs. It is passed
// in explicitly; the engine keeps no process-wide state.
type Config struct {
	TaxRate    decimal.Decimal
	LedgerPath string
	// CatalogPath overrides where the updated catalog is persisted;
	// empty means the store's own backing file.
	CatalogPath string
}

// Service turns a cart into a ledger entry and adjusts stock.
type Service interface {
	Checkout(ctx context.Context, crt *cart.Cart, store *catalog.Store, tendered decimal.Decimal) (*ledger.Sale, error)
}

type service struct {
	cfg  Config
	log  *logger.Logger
	book ledgerAppender
	now  func() time.Time
}

// NewService builds the checkout service. A nil appender gets the
// file-backed ledger.
func NewService(cfg Config, log *logger.Logger, book ledgerAppender) (Service, error) {
	if cfg.TaxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate must be non-negative")
	}
	if cfg.LedgerPath == "" {
		return nil, fmt.Errorf("ledger path required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if book == nil {
		book = ledger.Book{}
	}
	return &service{
		cfg:  cfg,
		log:  log,
		book: book,
		now:  time.Now,
	}, nil
}

// Checkout validates payment, appends the sale to the ledger, then
// decrements stock, persists the catalog and clears the cart.
//
// The ledger is written first on purpose: the file is append-only, so
// once the block is durable a crash in the later steps leaves a
// detectable record instead of vanished money. Before the append
// succeeds nothing is touched; an insufficient payment leaves cart,
// stock and ledger exactly as they were.
//
// A non-nil Sale returned together with a non-nil error means the sale
// is recorded but the catalog file could not be persisted; the caller
// must surface the error and may retry the save.
func (s *service) Checkout(ctx context.Context, crt *cart.Cart, store *catalog.Store, tendered decimal.Decimal) (*ledger.Sale, error) {
	if crt == nil || store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart and catalog are required")
	}
	if crt.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot checkout with an empty cart")
	}

	lines, pricedLines, err := s.freezeLines(crt, store)
	if err != nil {
		return nil, err
	}

	totals := pricing.Compute(pricedLines, s.cfg.TaxRate)
	if tendered.LessThan(totals.Total) {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientFunds, "cash tendered is less than the total due").
			WithDetails(map[string]string{
				"total":    totals.Total.StringFixed(2),
				"tendered": tendered.StringFixed(2),
			})
	}

	sale := &ledger.Sale{
		ID:        uuid.New(),
		Timestamp: s.now(),
		Lines:     lines,
		Subtotal:  totals.Subtotal,
		Tax:       totals.Tax,
		Total:     totals.Total,
		Tendered:  tendered,
		Change:    tendered.Sub(totals.Total),
	}

	ctx = s.log.WithSaleID(ctx, sale.ID.String())

	if err := s.book.Append(s.cfg.LedgerPath, sale); err != nil {
		s.log.Error(ctx, "ledger append failed, sale aborted", err)
		return nil, err
	}

	for _, line := range sale.Lines {
		if !line.Kind.Tracked() {
			continue
		}
		if err := s.decrement(store, line); err != nil {
			// the item was resolved moments ago; only catalog
			// corruption gets here
			s.log.Error(ctx, "stock decrement failed after ledger append", err)
			return sale, err
		}
	}

	catalogPath := s.cfg.CatalogPath
	if catalogPath == "" {
		catalogPath = store.Path()
	}
	saveErr := store.SaveTo(ctx, catalogPath)
	if saveErr != nil {
		s.log.Error(ctx, "catalog persist failed, sale already recorded", saveErr)
	}

	crt.Clear()
	s.log.Info(ctx, "sale completed")
	return sale, saveErr
}

func (s *service) freezeLines(crt *cart.Cart, store *catalog.Store) ([]ledger.SaleLine, []pricing.Line, error) {
	cartLines := crt.Lines()
	lines := make([]ledger.SaleLine, 0, len(cartLines))
	pricedLines := make([]pricing.Line, 0, len(cartLines))
	for _, cartLine := range cartLines {
		item, err := store.Get(cartLine.ItemID)
		if err != nil {
			return nil, nil, err
		}
		lines = append(lines, ledger.SaleLine{
			ItemID:    item.ID,
			Name:      item.Name,
			Qty:       cartLine.Qty,
			UnitPrice: item.Price,
			Kind:      item.Kind,
			Unit:      item.Unit(),
		})
		pricedLines = append(pricedLines, pricing.Line{UnitPrice: item.Price, Qty: cartLine.Qty})
	}
	return lines, pricedLines, nil
}

func (s *service) decrement(store *catalog.Store, line ledger.SaleLine) error {
	return store.DecrementStock(line.ItemID, line.Qty)
}
