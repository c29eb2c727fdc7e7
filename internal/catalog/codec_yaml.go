package catalog

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tillworks/tillcore/pkg/enums"
	pkgerrors "github.com/tillworks/tillcore/pkg/errors"
)

// yamlItem keeps price as a scalar string so unquoted numbers in hand
// written files decode cleanly and encoded output stays exact.
type yamlItem struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category,omitempty"`
	Kind        string `yaml:"kind,omitempty"`
	Price       string `yaml:"price"`
	Stock       int    `yaml:"stock"`
	Unit        string `yaml:"unit,omitempty"`
	Description string `yaml:"description,omitempty"`
}

type yamlCodec struct{}

func (yamlCodec) Format() enums.CatalogFormat {
	return enums.CatalogFormatYAML
}

func (yamlCodec) Decode(data []byte) ([]Item, error) {
	var wire []yamlItem
	if err := yaml.Unmarshal(data, &wire); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeFormat, err, "decode catalog yaml")
	}
	rows := make([]rawItem, 0, len(wire))
	for _, entry := range wire {
		rows = append(rows, rawItem{
			ID:          entry.ID,
			Name:        entry.Name,
			Category:    entry.Category,
			Kind:        entry.Kind,
			Price:       entry.Price,
			Stock:       strconv.Itoa(entry.Stock),
			Unit:        entry.Unit,
			Description: entry.Description,
		})
	}
	return decodeRows(rows)
}

func (yamlCodec) Encode(items []Item) ([]byte, error) {
	wire := make([]yamlItem, 0, len(items))
	for _, item := range items {
		wire = append(wire, yamlItem{
			ID:          item.ID,
			Name:        item.Name,
			Category:    item.Category,
			Kind:        item.Kind.String(),
			Price:       item.Price.String(),
			Stock:       item.OnHand(),
			Unit:        item.Unit(),
			Description: item.Description,
		})
	}
	data, err := yaml.Marshal(wire)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode catalog yaml")
	}
	return data, nil
}
