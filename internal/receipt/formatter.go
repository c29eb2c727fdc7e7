// Package receipt renders a completed sale as the fixed-width text the
// operator hands to the customer. The layout is a contract: registers
// archive these, so every column position is pinned by tests.
package receipt

import (
	"fmt"
	"os"
	"strings"

	"github.com/tillworks/tillcore/internal/ledger"
	pkgerrors "github.com/tillworks/tillcore/pkg/errors"
)

const rule = "----------------------------------------"

// Format renders the sale. Item names are padded or truncated to 25
// characters; amounts are right-aligned in 8 at two decimals; the
// totals block labels are right-aligned in 30.
func Format(sale *ledger.Sale) string {
	var sb strings.Builder

	sb.WriteString("*** SALE RECEIPT ***\n\n")
	sb.WriteString("Sale ID: " + sale.ID.String() + "\n")
	sb.WriteString("Date: " + sale.Timestamp.Format("2006-01-02 15:04:05") + "\n")
	sb.WriteString(rule + "\n")

	for _, line := range sale.Lines {
		fmt.Fprintf(&sb, "%-25.25s %dx %s %8s\n",
			line.Name,
			line.Qty,
			line.UnitPrice.StringFixed(2),
			line.LineTotal().StringFixed(2),
		)
	}

	sb.WriteString(rule + "\n")
	fmt.Fprintf(&sb, "%30s %8s\n", "Subtotal:", sale.Subtotal.StringFixed(2))
	fmt.Fprintf(&sb, "%30s %8s\n", "Tax:", sale.Tax.StringFixed(2))
	fmt.Fprintf(&sb, "%30s %8s\n", "Total:", sale.Total.StringFixed(2))
	sb.WriteString(rule + "\n")
	fmt.Fprintf(&sb, "%30s %8s\n", "Cash Tendered:", sale.Tendered.StringFixed(2))
	fmt.Fprintf(&sb, "%30s %8s\n", "Change Due:", sale.Change.StringFixed(2))
	sb.WriteString("\n*** Thank You! ***")

	return sb.String()
}

// Write saves the formatted receipt to path.
func Write(sale *ledger.Sale, path string) error {
	if err := os.WriteFile(path, []byte(Format(sale)+"\n"), 0o644); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeWriteFailure, err, "write receipt file")
	}
	return nil
}
