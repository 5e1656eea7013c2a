package wardrobe

import (
	"encoding/json"
	"fmt"
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Selection maps categories to the items chosen for them.
// Iteration follows insertion order, and JSON decoding keeps the key order of
// the source object, so combinations list their items in the order the caller
// supplied the categories.
type Selection struct {
	m *orderedmap.OrderedMap[string, []Item]
}

// NewSelection returns an empty Selection.
func NewSelection() *Selection {
	return &Selection{m: orderedmap.New[string, []Item]()}
}

func (s *Selection) init() {
	if s.m == nil {
		s.m = orderedmap.New[string, []Item]()
	}
}

// Add appends items to a category, creating it at the end if it is new.
func (s *Selection) Add(category string, items ...Item) {
	s.init()
	existing, _ := s.m.Get(category)
	merged := make([]Item, 0, len(existing)+len(items))
	merged = append(merged, existing...)
	merged = append(merged, items...)
	s.m.Set(category, merged)
}

// Set replaces the items of a category, keeping its position.
func (s *Selection) Set(category string, items []Item) {
	s.init()
	s.m.Set(category, items)
}

// Get returns the items of a category.
func (s *Selection) Get(category string) ([]Item, bool) {
	if s == nil || s.m == nil {
		return nil, false
	}
	return s.m.Get(category)
}

// Len returns the number of categories, including empty ones.
func (s *Selection) Len() int {
	if s == nil || s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Categories returns the categories and their items in insertion order.
func (s *Selection) Categories() []CategoryItems {
	if s == nil || s.m == nil {
		return nil
	}
	out := make([]CategoryItems, 0, s.m.Len())
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, CategoryItems{Category: pair.Key, Items: pair.Value})
	}
	return out
}

// NonEmpty returns only the categories that have at least one item.
func (s *Selection) NonEmpty() []CategoryItems {
	var out []CategoryItems
	for _, ci := range s.Categories() {
		if len(ci.Items) > 0 {
			out = append(out, ci)
		}
	}
	return out
}

// Size returns the number of combinations the selection expands to,
// saturating at math.MaxInt. Empty categories are ignored; fewer than two
// non-empty categories yields 0.
func (s *Selection) Size() int {
	cats := s.NonEmpty()
	if len(cats) < 2 {
		return 0
	}
	n := 1
	for _, ci := range cats {
		k := len(ci.Items)
		if n > math.MaxInt/k {
			return math.MaxInt
		}
		n *= k
	}
	return n
}

// ItemCount returns the number of items across all categories.
func (s *Selection) ItemCount() int {
	n := 0
	for _, ci := range s.Categories() {
		n += len(ci.Items)
	}
	return n
}

// MarshalJSON encodes the selection as an object in category order.
func (s *Selection) MarshalJSON() ([]byte, error) {
	s.init()
	return s.m.MarshalJSON()
}

// UnmarshalJSON decodes an object of category -> items, preserving key order.
func (s *Selection) UnmarshalJSON(data []byte) error {
	s.m = orderedmap.New[string, []Item]()
	if err := s.m.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("decoding selection: %w", err)
	}
	return nil
}

var (
	_ json.Marshaler   = (*Selection)(nil)
	_ json.Unmarshaler = (*Selection)(nil)
)
