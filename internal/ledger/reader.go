package ledger

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillworks/tillcore/pkg/enums"
	pkgerrors "github.com/tillworks/tillcore/pkg/errors"
)

// timestampLayouts covers the RFC 3339 form this writer emits plus the
// zone-less ISO form found in ledgers produced by the old register.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// Read parses the ledger file into sales, oldest first. A START block
// with no matching END, such as the trailing record of a crashed
// write, is dropped silently rather than reported: every complete
// record before it is still returned.
func Read(path string) ([]Sale, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "ledger file not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeWriteFailure, err, "open ledger file")
	}
	defer file.Close()

	var (
		sales   []Sale
		current *Sale
	)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case line == saleStartMarker:
			// a START inside an open block abandons the previous,
			// truncated record
			current = &Sale{}
		case line == saleEndMarker:
			if current != nil {
				current.Tax = current.Total.Sub(current.Subtotal)
				current.Change = current.Tendered.Sub(current.Total)
				sales = append(sales, *current)
				current = nil
			}
		case current == nil:
			// junk between blocks is ignored
		case strings.HasPrefix(line, idPrefix):
			id, err := uuid.Parse(strings.TrimPrefix(line, idPrefix))
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeFormat, err, "parse sale id")
			}
			current.ID = id
		case strings.HasPrefix(line, timestampPrefix):
			ts, err := parseTimestamp(strings.TrimPrefix(line, timestampPrefix))
			if err != nil {
				return nil, err
			}
			current.Timestamp = ts
		case strings.HasPrefix(line, itemPrefix):
			saleLine, err := parseItemLine(strings.TrimPrefix(line, itemPrefix))
			if err != nil {
				return nil, err
			}
			current.Lines = append(current.Lines, saleLine)
		case strings.HasPrefix(line, subtotalPrefix):
			value, err := parseAmount(strings.TrimPrefix(line, subtotalPrefix), "subtotal")
			if err != nil {
				return nil, err
			}
			current.Subtotal = value
		case strings.HasPrefix(line, totalPrefix):
			value, err := parseAmount(strings.TrimPrefix(line, totalPrefix), "total")
			if err != nil {
				return nil, err
			}
			current.Total = value
		case strings.HasPrefix(line, tenderedPrefix):
			value, err := parseAmount(strings.TrimPrefix(line, tenderedPrefix), "tendered")
			if err != nil {
				return nil, err
			}
			current.Tendered = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeWriteFailure, err, "read ledger file")
	}
	return sales, nil
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, pkgerrors.New(pkgerrors.CodeFormat, "unparseable sale timestamp "+value)
}

func parseAmount(value, field string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeFormat, err, "parse sale "+field)
	}
	return amount, nil
}

func parseItemLine(value string) (SaleLine, error) {
	parts := strings.Split(value, "|")
	if len(parts) < 4 {
		return SaleLine{}, pkgerrors.New(pkgerrors.CodeFormat, "sale item line needs at least 4 fields")
	}

	qty, err := strconv.Atoi(parts[2])
	if err != nil {
		return SaleLine{}, pkgerrors.Wrap(pkgerrors.CodeFormat, err, "parse sale item quantity")
	}
	price, err := decimal.NewFromString(parts[3])
	if err != nil {
		return SaleLine{}, pkgerrors.Wrap(pkgerrors.CodeFormat, err, "parse sale item price")
	}

	line := SaleLine{
		ItemID:    parts[0],
		Name:      parts[1],
		Qty:       qty,
		UnitPrice: price,
		Kind:      enums.ItemKindProduct,
	}
	// 4-field lines predate kinds and units
	if len(parts) >= 5 && parts[4] != "" {
		kind, err := enums.ParseItemKind(parts[4])
		if err != nil {
			return SaleLine{}, pkgerrors.Wrap(pkgerrors.CodeFormat, err, "parse sale item kind")
		}
		line.Kind = kind
	}
	if len(parts) >= 6 {
		line.Unit = parts[5]
	}
	return line, nil
}
