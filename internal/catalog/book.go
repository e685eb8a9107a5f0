package catalog

import (
	"slices"
	"time"
)

// AllGenres is the genre selector sentinel that disables genre filtering
const AllGenres = "all"

// MaxRating is the top of the rating scale used for display
const MaxRating = 5.0

// Book is a read-only catalog record
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genres        []string  `json:"genre"`
	DatePublished time.Time `json:"date_published"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	Price         float64   `json:"price"`
	Featured      bool      `json:"featured"`
}

// HasGenre reports whether tag is one of the book's genres
func (b Book) HasGenre(tag string) bool {
	return slices.Contains(b.Genres, tag)
}

// DisplayRating clamps the rating into [0, MaxRating]. The stored value is
// left as supplied.
func (b Book) DisplayRating() float64 {
	return max(0, min(b.Rating, MaxRating))
}

// Index maps book ids to books for cart resolution
type Index map[string]Book

// NewIndex builds an id lookup over the catalog
func NewIndex(books []Book) Index {
	idx := make(Index, len(books))
	for _, b := range books {
		idx[b.ID] = b
	}
	return idx
}

// Lookup returns the book for id, if it is still in the catalog
func (idx Index) Lookup(id string) (Book, bool) {
	b, ok := idx[id]
	return b, ok
}

// Genres returns the genre selector options: the "all" sentinel followed by
// every distinct tag in the catalog, sorted.
func Genres(books []Book) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, b := range books {
		for _, g := range b.Genres {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			tags = append(tags, g)
		}
	}
	slices.Sort(tags)
	return append([]string{AllGenres}, tags...)
}
