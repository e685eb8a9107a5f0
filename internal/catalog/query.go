package catalog

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Query filters and sorts books by the given criteria. The input slice is
// never modified; the result is a new slice, empty when nothing matches.
func Query(books []Book, c Criteria) []Book {
	result := Filter(books, c)
	Sort(result, c.SortKey, c.Direction)
	return result
}

// Filter keeps books whose title or author contains the search text
// (case-insensitive) and whose genres include the selected genre.
func Filter(books []Book, c Criteria) []Book {
	fold := cases.Fold()
	needle := fold.String(c.Search)
	genre := c.genre()

	result := make([]Book, 0, len(books))
	for _, b := range books {
		if needle != "" &&
			!strings.Contains(fold.String(b.Title), needle) &&
			!strings.Contains(fold.String(b.Author), needle) {
			continue
		}
		if genre != AllGenres && !b.HasGenre(genre) {
			continue
		}
		result = append(result, b)
	}
	return result
}

// Sort orders books in place by key and direction. The sort is stable and
// applies no secondary key.
func Sort(books []Book, key SortKey, dir Direction) {
	compare := comparator(key)
	if dir == Descending {
		asc := compare
		compare = func(a, b Book) int { return -asc(a, b) }
	}
	slices.SortStableFunc(books, compare)
}

func comparator(key SortKey) func(a, b Book) int {
	switch key {
	case SortByAuthor:
		// collate.Collator keeps internal buffers and is not safe for
		// concurrent use, so each sort gets its own.
		col := collate.New(language.English)
		return func(a, b Book) int { return col.CompareString(a.Author, b.Author) }
	case SortByDatePublished:
		return func(a, b Book) int { return a.DatePublished.Compare(b.DatePublished) }
	case SortByRating:
		return func(a, b Book) int { return cmp.Compare(a.Rating, b.Rating) }
	case SortByReviewCount:
		return func(a, b Book) int { return cmp.Compare(a.ReviewCount, b.ReviewCount) }
	case SortByPrice:
		return func(a, b Book) int { return cmp.Compare(a.Price, b.Price) }
	default:
		col := collate.New(language.English)
		return func(a, b Book) int { return col.CompareString(a.Title, b.Title) }
	}
}
