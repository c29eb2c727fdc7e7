package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tillworks/tillcore/internal/catalog"
	"github.com/tillworks/tillcore/pkg/enums"
	pkgerrors "github.com/tillworks/tillcore/pkg/errors"
)

func product(id, name string, price string, stock int) catalog.Item {
	return catalog.Item{
		ID:    id,
		Name:  name,
		Kind:  enums.ItemKindProduct,
		Price: decimal.RequireFromString(price),
		Stock: &catalog.StockInfo{OnHand: stock, Unit: "pcs"},
	}
}

func service(id, name string, price string) catalog.Item {
	return catalog.Item{
		ID:    id,
		Name:  name,
		Kind:  enums.ItemKindService,
		Price: decimal.RequireFromString(price),
	}
}

func TestAddIncrementsExistingLine(t *testing.T) {
	c := New()
	coffee := product("p1", "Coffee", "2.50", 10)

	if err := c.Add(coffee, 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := c.Add(coffee, 1); err != nil {
		t.Fatalf("second add: %v", err)
	}

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if lines[0].Qty != 2 {
		t.Fatalf("expected qty 2, got %d", lines[0].Qty)
	}
}

func TestAddRejectsOutOfStockProduct(t *testing.T) {
	c := New()
	err := c.Add(product("p1", "Coffee", "2.50", 0), 1)
	if !pkgerrors.IsCode(err, pkgerrors.CodeOutOfStock) {
		t.Fatalf("expected OUT_OF_STOCK, got %v", err)
	}
	if !c.IsEmpty() {
		t.Fatalf("cart should stay empty after a rejected add")
	}
}

func TestAddDoesNotRecheckStockOnIncrement(t *testing.T) {
	// an in-cart product is never re-checked when its line is topped
	// up, even at zero stock; keep in sync with the till behavior
	// before changing this
	c := New()
	last := product("p1", "Coffee", "2.50", 1)
	if err := c.Add(last, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	last.Stock.OnHand = 0
	if err := c.Add(last, 1); err != nil {
		t.Fatalf("increment should not re-check stock: %v", err)
	}
	if got := c.Quantity("p1"); got != 2 {
		t.Fatalf("expected qty 2, got %d", got)
	}
}

func TestAddAllowsUntrackedKindsRegardlessOfStock(t *testing.T) {
	c := New()
	if err := c.Add(service("s1", "Tune-up", "49.99"), 1); err != nil {
		t.Fatalf("service add should never be out of stock: %v", err)
	}
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	c := New()
	err := c.Add(product("p1", "Coffee", "2.50", 10), 0)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	c := New()
	if err := c.Add(product("p1", "Coffee", "2.50", 10), 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := c.Remove("p1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !c.IsEmpty() {
		t.Fatalf("cart should be empty after remove")
	}

	if err := c.Remove("p1"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND for absent line, got %v", err)
	}
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	c := New()
	for _, item := range []catalog.Item{
		product("p3", "Muffin", "3.00", 5),
		product("p1", "Coffee", "2.50", 10),
		product("p2", "Tea", "2.00", 8),
	} {
		if err := c.Add(item, 1); err != nil {
			t.Fatalf("add %s: %v", item.ID, err)
		}
	}
	// removing the middle line must not disturb the rest
	if err := c.Remove("p1"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	lines := c.Lines()
	if len(lines) != 2 || lines[0].ItemID != "p3" || lines[1].ItemID != "p2" {
		t.Fatalf("unexpected line order: %+v", lines)
	}
}

func TestClear(t *testing.T) {
	c := New()
	if err := c.Add(product("p1", "Coffee", "2.50", 10), 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	c.Clear()
	if !c.IsEmpty() || c.Len() != 0 {
		t.Fatalf("clear should drop every line")
	}
	if got := c.Quantity("p1"); got != 0 {
		t.Fatalf("expected zero quantity after clear, got %d", got)
	}
}
