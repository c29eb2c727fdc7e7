// Package reporting aggregates the sales ledger. It is strictly
// read-only and recomputes from the file on every request; the ledger
// stays the single source of truth.
package reporting

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tillworks/tillcore/internal/ledger"
	"github.com/tillworks/tillcore/pkg/enums"
)

// ItemCount is one entry of the top-items ranking.
type ItemCount struct {
	Name string
	Qty  int
}

// DayTotal is the revenue of one calendar day.
type DayTotal struct {
	Day   string
	Total decimal.Decimal
}

// Report is the full set of aggregations over a ledger.
type Report struct {
	Revenue      decimal.Decimal
	Transactions int
	TopItems     []ItemCount
	ByKind       map[enums.ItemKind]int
	ByDay        []DayTotal
}

// Build aggregates the given sales. TopItems is sorted by quantity
// descending with name as the tie-breaker; ByDay is sorted by date
// ascending, so output is deterministic for equal input.
func Build(sales []ledger.Sale) Report {
	report := Report{
		Revenue: decimal.Zero,
		ByKind:  map[enums.ItemKind]int{},
	}

	itemQty := map[string]int{}
	dayTotals := map[string]decimal.Decimal{}

	for _, sale := range sales {
		report.Transactions++
		report.Revenue = report.Revenue.Add(sale.Total)
		day := sale.Day()
		dayTotals[day] = dayTotals[day].Add(sale.Total)
		for _, line := range sale.Lines {
			itemQty[line.Name] += line.Qty
			report.ByKind[line.Kind] += line.Qty
		}
	}

	report.TopItems = make([]ItemCount, 0, len(itemQty))
	for name, qty := range itemQty {
		report.TopItems = append(report.TopItems, ItemCount{Name: name, Qty: qty})
	}
	sort.Slice(report.TopItems, func(i, j int) bool {
		if report.TopItems[i].Qty != report.TopItems[j].Qty {
			return report.TopItems[i].Qty > report.TopItems[j].Qty
		}
		return report.TopItems[i].Name < report.TopItems[j].Name
	})

	report.ByDay = make([]DayTotal, 0, len(dayTotals))
	for day, total := range dayTotals {
		report.ByDay = append(report.ByDay, DayTotal{Day: day, Total: total})
	}
	sort.Slice(report.ByDay, func(i, j int) bool {
		return report.ByDay[i].Day < report.ByDay[j].Day
	})

	return report
}

// FromFile reads the ledger at path and aggregates it.
func FromFile(path string) (Report, error) {
	sales, err := ledger.Read(path)
	if err != nil {
		return Report{}, err
	}
	return Build(sales), nil
}
