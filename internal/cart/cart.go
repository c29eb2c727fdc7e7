package cart

import (
	"github.com/tillworks/tillcore/internal/catalog"
	pkgerrors "github.com/tillworks/tillcore/pkg/errors"
)

// Line references a catalog item by id with the quantity being bought.
// At most one line exists per item id.
type Line struct {
	ItemID string
	Qty    int
}

// Cart is the in-progress order. Lines keep insertion order because
// receipts print them in the order they were rung up. Never persisted;
// it lives for the duration of one sale.
type Cart struct {
	lines []Line
	index map[string]int
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{index: map[string]int{}}
}

// Add puts qty of the item in the cart. An item already present has
// its quantity incremented instead of gaining a second line. A product
// with no stock on hand cannot be newly added; an increment of an
// existing line is deliberately not re-checked, matching the behavior
// operators already rely on at the till.
func (c *Cart) Add(item catalog.Item, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if idx, ok := c.index[item.ID]; ok {
		c.lines[idx].Qty += qty
		return nil
	}
	if item.Kind.Tracked() && item.OnHand() <= 0 {
		return pkgerrors.New(pkgerrors.CodeOutOfStock, item.Name+" is out of stock")
	}
	c.index[item.ID] = len(c.lines)
	c.lines = append(c.lines, Line{ItemID: item.ID, Qty: qty})
	return nil
}

// Remove deletes the line for the given item id.
func (c *Cart) Remove(itemID string) error {
	idx, ok := c.index[itemID]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item "+itemID+" is not in the cart")
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
	c.reindex()
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = map[string]int{}
}

// Lines returns a snapshot of the cart in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Len reports the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Quantity reports the quantity for the given item id, zero if absent.
func (c *Cart) Quantity(itemID string) int {
	if idx, ok := c.index[itemID]; ok {
		return c.lines[idx].Qty
	}
	return 0
}

func (c *Cart) reindex() {
	c.index = make(map[string]int, len(c.lines))
	for idx, line := range c.lines {
		c.index[line.ItemID] = idx
	}
}
