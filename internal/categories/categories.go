// Package categories maintains the main/sub category tree offered in
// the item editor. A built-in tree is always present; a user JSON file
// can add new mains or extend the subs of existing ones, never remove
// defaults.
package categories

import (
	"encoding/json"
	"os"
	"sort"

	pkgerrors "github.com/tillworks/tillcore/pkg/errors"
)

var defaultTree = map[string][]string{
	"General":      {"Miscellaneous"},
	"Food & Drink": {"Coffee", "Tea", "Snacks", "Bakery"},
	"Retail":       {"Apparel", "Accessories", "Stationery"},
	"Services":     {"Repair", "Consulting", "Classes"},
	"Digital":      {"Software", "Gift Cards", "Media"},
}

// Tree is the merged category hierarchy.
type Tree struct {
	subs map[string][]string
}

// Defaults returns the built-in tree alone.
func Defaults() *Tree {
	tree := &Tree{subs: map[string][]string{}}
	tree.merge(defaultTree)
	return tree
}

// Load merges the user categories file over the defaults. The file is
// a JSON object mapping main-category name to an array of sub names.
// A missing file yields just the defaults; a malformed one is a
// format error.
func Load(path string) (*Tree, error) {
	tree := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tree, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeWriteFailure, err, "read categories file")
	}

	var user map[string][]string
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeFormat, err, "decode categories file")
	}

	tree.merge(user)
	return tree, nil
}

// Mains lists the main categories in sorted order.
func (t *Tree) Mains() []string {
	mains := make([]string, 0, len(t.subs))
	for main := range t.subs {
		mains = append(mains, main)
	}
	sort.Strings(mains)
	return mains
}

// Subs lists the sub categories of a main, nil for an unknown main.
func (t *Tree) Subs(main string) []string {
	subs, ok := t.subs[main]
	if !ok {
		return nil
	}
	out := make([]string, len(subs))
	copy(out, subs)
	return out
}

// Has reports whether the main/sub pair exists. An empty sub checks
// only the main.
func (t *Tree) Has(main, sub string) bool {
	subs, ok := t.subs[main]
	if !ok {
		return false
	}
	if sub == "" {
		return true
	}
	for _, candidate := range subs {
		if candidate == sub {
			return true
		}
	}
	return false
}

func (t *Tree) merge(source map[string][]string) {
	for main, subs := range source {
		existing := t.subs[main]
		seen := make(map[string]struct{}, len(existing))
		for _, sub := range existing {
			seen[sub] = struct{}{}
		}
		for _, sub := range subs {
			if _, dup := seen[sub]; dup {
				continue
			}
			seen[sub] = struct{}{}
			existing = append(existing, sub)
		}
		t.subs[main] = existing
	}
}
