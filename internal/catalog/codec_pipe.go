package catalog

import (
	"strings"

	"github.com/tillworks/tillcore/pkg/enums"
	pkgerrors "github.com/tillworks/tillcore/pkg/errors"
)

// pipeCodec handles the pipe-delimited text format. Two row shapes are
// accepted on decode: the legacy 4-field `id|name|price|stock` and the
// extended 8-field `id|name|category|kind|price|stock|unit|description`.
// Encode always writes the extended shape.
type pipeCodec struct{}

func (pipeCodec) Format() enums.CatalogFormat {
	return enums.CatalogFormatPipe
}

func (pipeCodec) Decode(data []byte) ([]Item, error) {
	var rows []rawItem
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "|")
		switch {
		case len(parts) >= 8:
			rows = append(rows, rawItem{
				ID:          parts[0],
				Name:        parts[1],
				Category:    parts[2],
				Kind:        parts[3],
				Price:       parts[4],
				Stock:       parts[5],
				Unit:        parts[6],
				Description: parts[7],
			})
		case len(parts) == 4:
			rows = append(rows, rawItem{
				ID:    parts[0],
				Name:  parts[1],
				Price: parts[2],
				Stock: parts[3],
			})
		default:
			return nil, pkgerrors.New(pkgerrors.CodeFormat, "pipe row must have 4 or 8 fields")
		}
	}
	return decodeRows(rows)
}

func (pipeCodec) Encode(items []Item) ([]byte, error) {
	var sb strings.Builder
	for _, item := range items {
		raw := fromItem(item)
		sb.WriteString(strings.Join([]string{
			raw.ID,
			raw.Name,
			raw.Category,
			raw.Kind,
			raw.Price,
			raw.Stock,
			raw.Unit,
			raw.Description,
		}, "|"))
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}
