package catalog

import "strings"

// SortKey selects the comparator used to order query results
type SortKey string

const (
	SortByTitle         SortKey = "title"
	SortByAuthor        SortKey = "author"
	SortByDatePublished SortKey = "datePublished"
	SortByRating        SortKey = "rating"
	SortByReviewCount   SortKey = "reviewCount"
	SortByPrice         SortKey = "price"
)

// Direction flips the comparator sign
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Criteria holds the user-controlled filter and sort parameters
type Criteria struct {
	Search    string
	Genre     string
	SortKey   SortKey
	Direction Direction
}

// DefaultCriteria matches everything, ordered by title ascending
func DefaultCriteria() Criteria {
	return Criteria{
		Genre:     AllGenres,
		SortKey:   SortByTitle,
		Direction: Ascending,
	}
}

// ParseSortKey maps a user supplied key to a SortKey. Matching ignores case
// and accepts snake_case; unknown keys fall back to title.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.ReplaceAll(s, "_", "")) {
	case "author":
		return SortByAuthor
	case "datepublished", "date":
		return SortByDatePublished
	case "rating":
		return SortByRating
	case "reviewcount", "reviews":
		return SortByReviewCount
	case "price":
		return SortByPrice
	default:
		return SortByTitle
	}
}

// ParseDirection maps "desc"/"descending" to Descending and anything else to
// Ascending.
func ParseDirection(s string) Direction {
	switch strings.ToLower(s) {
	case "desc", "descending":
		return Descending
	default:
		return Ascending
	}
}

func (c Criteria) genre() string {
	if c.Genre == "" {
		return AllGenres
	}
	return c.Genre
}
