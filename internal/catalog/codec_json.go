package catalog

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/tillworks/tillcore/pkg/enums"
	pkgerrors "github.com/tillworks/tillcore/pkg/errors"
)

// jsonItem is the wire shape of one catalog entry in a JSON array.
// Price accepts both a JSON number and a quoted decimal string.
type jsonItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category,omitempty"`
	Kind        string          `json:"kind,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Unit        string          `json:"unit,omitempty"`
	Description string          `json:"description,omitempty"`
}

type jsonCodec struct{}

func (jsonCodec) Format() enums.CatalogFormat {
	return enums.CatalogFormatJSON
}

func (jsonCodec) Decode(data []byte) ([]Item, error) {
	var wire []jsonItem
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeFormat, err, "decode catalog json")
	}
	rows := make([]rawItem, 0, len(wire))
	for _, entry := range wire {
		rows = append(rows, wireToRaw(entry.ID, entry.Name, entry.Category, entry.Kind, entry.Price, entry.Stock, entry.Unit, entry.Description))
	}
	return decodeRows(rows)
}

func (jsonCodec) Encode(items []Item) ([]byte, error) {
	wire := make([]jsonItem, 0, len(items))
	for _, item := range items {
		wire = append(wire, jsonItem{
			ID:          item.ID,
			Name:        item.Name,
			Category:    item.Category,
			Kind:        item.Kind.String(),
			Price:       item.Price,
			Stock:       item.OnHand(),
			Unit:        item.Unit(),
			Description: item.Description,
		})
	}
	data, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode catalog json")
	}
	return append(data, '\n'), nil
}
