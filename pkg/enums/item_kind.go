package enums

import "fmt"

// ItemKind classifies a catalog item. Only products carry on-hand
// stock; the other kinds sell without inventory tracking.
type ItemKind string

const (
	ItemKindProduct      ItemKind = "product"
	ItemKindService      ItemKind = "service"
	ItemKindSubscription ItemKind = "subscription"
	ItemKindBooking      ItemKind = "booking"
	ItemKindDigital      ItemKind = "digital"
)

func (k ItemKind) String() string {
	return string(k)
}

func (k ItemKind) IsValid() bool {
	switch k {
	case ItemKindProduct, ItemKindService, ItemKindSubscription, ItemKindBooking, ItemKindDigital:
		return true
	}
	return false
}

// Tracked reports whether stock is decremented when the item sells.
func (k ItemKind) Tracked() bool {
	return k == ItemKindProduct
}

func ParseItemKind(value string) (ItemKind, error) {
	kind := ItemKind(value)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid item kind: %q", value)
	}
	return kind, nil
}
