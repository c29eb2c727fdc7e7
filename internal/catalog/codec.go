package catalog

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/tillworks/tillcore/pkg/enums"
	pkgerrors "github.com/tillworks/tillcore/pkg/errors"
)

// Codec is the strategy for one catalog file serialization. Decode and
// Encode are whole-file operations: a single malformed row fails the
// entire decode, nothing is partially applied.
type Codec interface {
	Format() enums.CatalogFormat
	Decode(data []byte) ([]Item, error)
	Encode(items []Item) ([]byte, error)
}

var codecs = map[enums.CatalogFormat]Codec{
	enums.CatalogFormatPipe: pipeCodec{},
	enums.CatalogFormatJSON: jsonCodec{},
	enums.CatalogFormatCSV:  csvCodec{},
	enums.CatalogFormatYAML: yamlCodec{},
}

// CodecFor returns the codec registered for the format.
func CodecFor(format enums.CatalogFormat) (Codec, error) {
	codec, ok := codecs[format]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported catalog format "+format.String())
	}
	return codec, nil
}

// CodecForPath selects a codec from the destination's file extension.
func CodecForPath(path string) (Codec, error) {
	format, err := enums.CatalogFormatForPath(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "select catalog codec")
	}
	return CodecFor(format)
}

// rawItem is the flat row shape shared by every serialization. All
// formats normalize into it before defaults are applied.
type rawItem struct {
	ID          string
	Name        string
	Category    string
	Kind        string
	Price       string
	Stock       string
	Unit        string
	Description string
}

func (r rawItem) toItem() (Item, error) {
	if r.ID == "" || r.Name == "" {
		return Item{}, pkgerrors.New(pkgerrors.CodeFormat, "item row missing id or name")
	}

	kind := enums.ItemKindProduct
	if r.Kind != "" {
		parsed, err := enums.ParseItemKind(r.Kind)
		if err != nil {
			return Item{}, pkgerrors.Wrap(pkgerrors.CodeFormat, err, "item row has unknown kind")
		}
		kind = parsed
	}

	price := decimal.Zero
	if r.Price != "" {
		parsed, err := decimal.NewFromString(r.Price)
		if err != nil {
			return Item{}, pkgerrors.Wrap(pkgerrors.CodeFormat, err, "item row has non-numeric price")
		}
		price = parsed
	}
	if price.IsNegative() {
		return Item{}, pkgerrors.New(pkgerrors.CodeFormat, "item row has negative price")
	}

	stock := 0
	if r.Stock != "" {
		parsed, err := strconv.Atoi(r.Stock)
		if err != nil {
			return Item{}, pkgerrors.Wrap(pkgerrors.CodeFormat, err, "item row has non-numeric stock")
		}
		stock = parsed
	}

	item := Item{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Kind:        kind,
		Price:       price,
		Description: r.Description,
	}
	if kind.Tracked() {
		item.Stock = &StockInfo{OnHand: stock, Unit: r.Unit}
	}
	return item.Normalize(), nil
}

func fromItem(item Item) rawItem {
	raw := rawItem{
		ID:          item.ID,
		Name:        item.Name,
		Category:    item.Category,
		Kind:        item.Kind.String(),
		Price:       item.Price.String(),
		Stock:       "0",
		Unit:        "",
		Description: item.Description,
	}
	if item.Stock != nil {
		raw.Stock = strconv.Itoa(item.Stock.OnHand)
		raw.Unit = item.Stock.Unit
	}
	return raw
}

func wireToRaw(id, name, category, kind string, price decimal.Decimal, stock int, unit, description string) rawItem {
	return rawItem{
		ID:          id,
		Name:        name,
		Category:    category,
		Kind:        kind,
		Price:       price.String(),
		Stock:       strconv.Itoa(stock),
		Unit:        unit,
		Description: description,
	}
}

func decodeRows(rows []rawItem) ([]Item, error) {
	items := make([]Item, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		item, err := row.toItem()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[item.ID]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeFormat, "duplicate item id "+item.ID)
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}
	return items, nil
}
