package catalog

import (
	"bytes"
	"encoding/csv"

	"github.com/tillworks/tillcore/pkg/enums"
	pkgerrors "github.com/tillworks/tillcore/pkg/errors"
)

var csvHeader = []string{"id", "name", "category", "kind", "price", "stock", "unit", "description"}

// csvCodec reads and writes catalogs as CSV with a header row. Columns
// are matched by header name, so partial files (for example the
// id,name,price,stock subset) still decode with defaults.
type csvCodec struct{}

func (csvCodec) Format() enums.CatalogFormat {
	return enums.CatalogFormatCSV
}

func (csvCodec) Decode(data []byte) ([]Item, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeFormat, err, "decode catalog csv")
	}
	if len(records) == 0 {
		return []Item{}, nil
	}

	columns := make(map[string]int, len(records[0]))
	for idx, name := range records[0] {
		columns[name] = idx
	}
	field := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	rows := make([]rawItem, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, rawItem{
			ID:          field(record, "id"),
			Name:        field(record, "name"),
			Category:    field(record, "category"),
			Kind:        field(record, "kind"),
			Price:       field(record, "price"),
			Stock:       field(record, "stock"),
			Unit:        field(record, "unit"),
			Description: field(record, "description"),
		})
	}
	return decodeRows(rows)
}

func (csvCodec) Encode(items []Item) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode catalog csv")
	}
	for _, item := range items {
		raw := fromItem(item)
		record := []string{
			raw.ID,
			raw.Name,
			raw.Category,
			raw.Kind,
			raw.Price,
			raw.Stock,
			raw.Unit,
			raw.Description,
		}
		if err := writer.Write(record); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode catalog csv")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode catalog csv")
	}
	return buf.Bytes(), nil
}
