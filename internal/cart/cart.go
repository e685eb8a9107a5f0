package cart

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/bookstore/services/storefront/internal/catalog"
)

// Line is one book's quantity entry within the cart
type Line struct {
	BookID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
}

// Cart maps book ids to positive quantities. The zero value is an empty cart.
type Cart struct {
	items map[string]int
}

// New returns an empty cart
func New() Cart {
	return Cart{items: map[string]int{}}
}

// Quantity returns the quantity carted for bookID, 0 when absent
func (c Cart) Quantity(bookID string) int {
	return c.items[bookID]
}

// Len is the number of distinct lines
func (c Cart) Len() int {
	return len(c.items)
}

// TotalItemCount is the sum of all line quantities
func (c Cart) TotalItemCount() int {
	total := 0
	for _, q := range c.items {
		total += q
	}
	return total
}

// Lines returns the cart lines ordered by book id
func (c Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.items))
	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		lines = append(lines, Line{BookID: id, Quantity: c.items[id]})
	}
	return lines
}

// with returns a copy of c with bookID set to qty; qty <= 0 drops the line
func (c Cart) with(bookID string, qty int) Cart {
	next := make(map[string]int, len(c.items)+1)
	maps.Copy(next, c.items)
	if qty <= 0 {
		delete(next, bookID)
	} else {
		next[bookID] = qty
	}
	return Cart{items: next}
}

// MarshalJSON encodes the cart as {"<bookId>": quantity, ...}
func (c Cart) MarshalJSON() ([]byte, error) {
	if c.items == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c.items)
}

// UnmarshalJSON accepts the stored mapping form and drops non-positive
// quantities.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	items := make(map[string]int, len(raw))
	for id, q := range raw {
		if q > 0 {
			items[id] = q
		}
	}
	c.items = items
	return nil
}

// ResolvedLine is a cart line joined with its catalog record. Orphaned lines
// reference a book that is no longer in the catalog and carry no metadata.
type ResolvedLine struct {
	Line
	Book     *catalog.Book `json:"book,omitempty"`
	Subtotal float64       `json:"subtotal"`
	Orphaned bool          `json:"orphaned"`
}

// Summary is a cart ready for rendering
type Summary struct {
	Lines          []ResolvedLine `json:"lines"`
	TotalItemCount int            `json:"total_item_count"`
	Subtotal       float64        `json:"subtotal"`
}

// Resolve joins cart lines with the catalog. Unknown ids are kept as orphaned
// lines; their quantity still counts toward the item total but not toward the
// subtotal.
func Resolve(c Cart, idx catalog.Index) Summary {
	s := Summary{Lines: []ResolvedLine{}}
	for _, line := range c.Lines() {
		rl := ResolvedLine{Line: line}
		if b, ok := idx.Lookup(line.BookID); ok {
			rl.Book = &b
			rl.Subtotal = b.Price * float64(line.Quantity)
			s.Subtotal += rl.Subtotal
		} else {
			rl.Orphaned = true
		}
		s.TotalItemCount += line.Quantity
		s.Lines = append(s.Lines, rl)
	}
	return s
}
