package categories

import (
	"os"
	"path/filepath"
	"testing"

	pkgerrors "github.com/tillworks/tillcore/pkg/errors"
)

func writeCategories(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write categories file: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	tree := Defaults()

	mains := tree.Mains()
	want := []string{"Digital", "Food & Drink", "General", "Retail", "Services"}
	if len(mains) != len(want) {
		t.Fatalf("mains = %v, want %v", mains, want)
	}
	for i := range want {
		if mains[i] != want[i] {
			t.Fatalf("mains = %v, want %v", mains, want)
		}
	}

	if !tree.Has("Food & Drink", "Coffee") {
		t.Fatal("expected default sub Coffee under Food & Drink")
	}
	if tree.Has("Food & Drink", "Sushi") {
		t.Fatal("unexpected sub Sushi")
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	tree, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !tree.Has("General", "Miscellaneous") {
		t.Fatal("defaults missing after loading absent file")
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := writeCategories(t, `{
		"Food & Drink": ["Coffee", "Smoothies"],
		"Garden": ["Plants", "Tools"]
	}`)

	tree, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// new main appears alongside the defaults
	if !tree.Has("Garden", "Plants") {
		t.Fatal("expected user main Garden with sub Plants")
	}
	// existing main keeps its defaults and gains the new sub once
	subs := tree.Subs("Food & Drink")
	count := 0
	sawCoffee, sawSmoothies := false, false
	for _, sub := range subs {
		if sub == "Coffee" {
			count++
			sawCoffee = true
		}
		if sub == "Smoothies" {
			sawSmoothies = true
		}
	}
	if !sawCoffee || !sawSmoothies {
		t.Fatalf("subs = %v, want Coffee and Smoothies present", subs)
	}
	if count != 1 {
		t.Fatalf("Coffee duplicated in %v", subs)
	}
}

func TestLoadPreservesDefaultOrderBeforeUserSubs(t *testing.T) {
	path := writeCategories(t, `{"Retail": ["Toys"]}`)

	tree, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	subs := tree.Subs("Retail")
	want := []string{"Apparel", "Accessories", "Stationery", "Toys"}
	if len(subs) != len(want) {
		t.Fatalf("subs = %v, want %v", subs, want)
	}
	for i := range want {
		if subs[i] != want[i] {
			t.Fatalf("subs = %v, want %v", subs, want)
		}
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeCategories(t, `{"Retail": "not-an-array"`)

	_, err := Load(path)
	if !pkgerrors.IsCode(err, pkgerrors.CodeFormat) {
		t.Fatalf("Load() error = %v, want %s", err, pkgerrors.CodeFormat)
	}
}

func TestSubsReturnsCopy(t *testing.T) {
	tree := Defaults()
	subs := tree.Subs("Services")
	if len(subs) == 0 {
		t.Fatal("expected default subs for Services")
	}
	subs[0] = "mutated"
	if tree.Has("Services", "mutated") {
		t.Fatal("mutating the returned slice leaked into the tree")
	}
}

func TestHasEmptySubChecksMainOnly(t *testing.T) {
	tree := Defaults()
	if !tree.Has("Digital", "") {
		t.Fatal("expected Has to accept empty sub for a known main")
	}
	if tree.Has("Nowhere", "") {
		t.Fatal("unexpected unknown main")
	}
}
