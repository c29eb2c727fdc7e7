package enums

import "testing"

func TestItemKindIsValid(t *testing.T) {
	for _, kind := range []ItemKind{
		ItemKindProduct, ItemKindService, ItemKindSubscription, ItemKindBooking, ItemKindDigital,
	} {
		if !kind.IsValid() {
			t.Fatalf("%s should be valid", kind)
		}
	}
	if ItemKind("hardware").IsValid() {
		t.Fatal("unknown kind should be invalid")
	}
	if ItemKind("").IsValid() {
		t.Fatal("empty kind should be invalid")
	}
}

func TestItemKindTracked(t *testing.T) {
	if !ItemKindProduct.Tracked() {
		t.Fatal("products track stock")
	}
	for _, kind := range []ItemKind{
		ItemKindService, ItemKindSubscription, ItemKindBooking, ItemKindDigital,
	} {
		if kind.Tracked() {
			t.Fatalf("%s should not track stock", kind)
		}
	}
}

func TestParseItemKind(t *testing.T) {
	kind, err := ParseItemKind("service")
	if err != nil {
		t.Fatalf("ParseItemKind() error = %v", err)
	}
	if kind != ItemKindService {
		t.Fatalf("ParseItemKind() = %s", kind)
	}

	if _, err := ParseItemKind("SERVICE"); err == nil {
		t.Fatal("kinds are stored lowercase; uppercase should not parse")
	}
	if _, err := ParseItemKind("gadget"); err == nil {
		t.Fatal("unknown kind should not parse")
	}
}

func TestParseCatalogFormat(t *testing.T) {
	format, err := ParseCatalogFormat(" YAML ")
	if err != nil {
		t.Fatalf("ParseCatalogFormat() error = %v", err)
	}
	if format != CatalogFormatYAML {
		t.Fatalf("ParseCatalogFormat() = %s", format)
	}

	if _, err := ParseCatalogFormat("xml"); err == nil {
		t.Fatal("unsupported format should not parse")
	}
}

func TestCatalogFormatForPath(t *testing.T) {
	cases := []struct {
		path    string
		want    CatalogFormat
		wantErr bool
	}{
		{path: "products.txt", want: CatalogFormatPipe},
		{path: "/data/catalog.JSON", want: CatalogFormatJSON},
		{path: "export.csv", want: CatalogFormatCSV},
		{path: "catalog.yaml", want: CatalogFormatYAML},
		{path: "catalog.yml", want: CatalogFormatYAML},
		{path: "catalog.xml", wantErr: true},
		{path: "catalog", wantErr: true},
	}
	for _, tc := range cases {
		got, err := CatalogFormatForPath(tc.path)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("CatalogFormatForPath(%q) expected error", tc.path)
			}
			continue
		}
		if err != nil {
			t.Fatalf("CatalogFormatForPath(%q) error = %v", tc.path, err)
		}
		if got != tc.want {
			t.Fatalf("CatalogFormatForPath(%q) = %s, want %s", tc.path, got, tc.want)
		}
	}
}
