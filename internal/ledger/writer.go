package ledger

import (
	"os"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/tillworks/tillcore/pkg/errors"
)

const (
	saleStartMarker = "--- SALE START ---"
	saleEndMarker   = "--- SALE END ---"

	idPrefix        = "ID: "
	timestampPrefix = "TIMESTAMP: "
	itemPrefix      = "ITEM: "
	subtotalPrefix  = "SUBTOTAL: "
	totalPrefix     = "TOTAL: "
	tenderedPrefix  = "TENDERED: "
)

// Book appends sales to a ledger file. The zero value is ready to use.
type Book struct{}

// Append writes the sale as one block at the end of the ledger file,
// creating the file if needed. Tax is not stored; readers reconstruct
// it as total minus subtotal.
func (Book) Append(path string, sale *Sale) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeWriteFailure, err, "open ledger file")
	}
	defer file.Close()

	if _, err := file.WriteString(formatBlock(sale)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeWriteFailure, err, "append sale to ledger")
	}
	return nil
}

// Append is the package-level convenience over a zero Book.
func Append(path string, sale *Sale) error {
	return Book{}.Append(path, sale)
}

func formatBlock(sale *Sale) string {
	var sb strings.Builder
	sb.WriteString(saleStartMarker + "\n")
	sb.WriteString(idPrefix + sale.ID.String() + "\n")
	sb.WriteString(timestampPrefix + sale.Timestamp.Format(time.RFC3339Nano) + "\n")
	for _, line := range sale.Lines {
		sb.WriteString(itemPrefix + strings.Join([]string{
			line.ItemID,
			line.Name,
			strconv.Itoa(line.Qty),
			line.UnitPrice.String(),
			line.Kind.String(),
			line.Unit,
		}, "|") + "\n")
	}
	sb.WriteString(subtotalPrefix + sale.Subtotal.StringFixed(2) + "\n")
	sb.WriteString(totalPrefix + sale.Total.StringFixed(2) + "\n")
	sb.WriteString(tenderedPrefix + sale.Tendered.StringFixed(2) + "\n")
	sb.WriteString(saleEndMarker + "\n\n")
	return sb.String()
}

