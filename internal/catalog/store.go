package catalog

import (
	"context"
	"os"

	pkgerrors "github.com/tillworks/tillcore/pkg/errors"
)

// Store owns the in-memory catalog and its backing file. It is not
// safe for concurrent use; the engine assumes a single operator on a
// single till.
type Store struct {
	path  string
	items []Item
	index map[string]int
}

// NewStore returns an empty catalog store.
func NewStore() *Store {
	return &Store{index: map[string]int{}}
}

// Path reports the file the store was last loaded from or saved to.
func (s *Store) Path() string {
	return s.path
}

// Len reports the number of catalog entries.
func (s *Store) Len() int {
	return len(s.items)
}

// Load replaces the in-memory catalog with the contents of path. The
// format is chosen by file extension. A missing file is NOT_FOUND so
// the caller can fall back to an empty catalog; any malformed row
// aborts the whole load and leaves the previous state untouched.
func (s *Store) Load(ctx context.Context, path string) error {
	codec, err := CodecForPath(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "catalog file not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeWriteFailure, err, "read catalog file")
	}

	items, err := codec.Decode(data)
	if err != nil {
		return err
	}

	s.replace(items)
	s.path = path
	return nil
}

// Reset drops every entry; the fallback after a failed Load.
func (s *Store) Reset() {
	s.replace(nil)
}

// Replace swaps the whole catalog for the given set after validating
// each entry and the unique-id invariant.
func (s *Store) Replace(items []Item) error {
	normalized := make([]Item, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = item.Normalize()
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.ID]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate item id "+item.ID)
		}
		seen[item.ID] = struct{}{}
		normalized = append(normalized, item)
	}
	s.replace(normalized)
	return nil
}

// Items returns a snapshot of the catalog in file order.
func (s *Store) Items() []Item {
	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item.Clone())
	}
	return out
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (Item, error) {
	idx, ok := s.index[id]
	if !ok {
		return Item{}, pkgerrors.New(pkgerrors.CodeNotFound, "item "+id+" not in catalog")
	}
	return s.items[idx].Clone(), nil
}

// Upsert validates the item and inserts it, or replaces the entry
// sharing its id.
func (s *Store) Upsert(item Item) error {
	item = item.Normalize()
	if err := item.Validate(); err != nil {
		return err
	}
	if idx, ok := s.index[item.ID]; ok {
		s.items[idx] = item
		return nil
	}
	s.index[item.ID] = len(s.items)
	s.items = append(s.items, item)
	return nil
}

// Remove deletes the entry with the given id.
func (s *Store) Remove(id string) error {
	idx, ok := s.index[id]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item "+id+" not in catalog")
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.reindex()
	return nil
}

// DecrementStock reduces a product's on-hand count by qty. Untracked
// kinds are left alone: stock is never meaningful for them.
func (s *Store) DecrementStock(id string, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	idx, ok := s.index[id]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item "+id+" not in catalog")
	}
	item := &s.items[idx]
	if !item.Kind.Tracked() || item.Stock == nil {
		return nil
	}
	item.Stock.OnHand -= qty
	return nil
}

// Save serializes the catalog back to the file it was loaded from.
func (s *Store) Save(ctx context.Context) error {
	if s.path == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "store has no backing file")
	}
	return s.SaveTo(ctx, s.path)
}

// SaveTo serializes the catalog to path, overwriting it. Encoding runs
// before any byte hits disk, so an unsupported destination can never
// truncate the file; a failed write still leaves memory untouched.
func (s *Store) SaveTo(ctx context.Context, path string) error {
	codec, err := CodecForPath(path)
	if err != nil {
		return err
	}
	data, err := codec.Encode(s.items)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeWriteFailure, err, "write catalog file")
	}
	s.path = path
	return nil
}

func (s *Store) replace(items []Item) {
	s.items = items
	s.reindex()
}

func (s *Store) reindex() {
	s.index = make(map[string]int, len(s.items))
	for idx, item := range s.items {
		s.index[item.ID] = idx
	}
}
