package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
books:
  - id: b1
    title: The Go Programming Language
    author: Alan Donovan
    genre: [programming]
    date_published: 2015-10-26
    rating: 4.7
    review_count: 820
    price: 34.99
    featured: true
  - id: b2
    title: Dune
    author: Frank Herbert
    genre: [fiction, " scifi ", fiction]
    date_published: "1965"
    rating: 7.5
    review_count: 12000
    price: 9.99
`

func TestLoad(t *testing.T) {
	books, err := Load(strings.NewReader(fixture))
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "b1", books[0].ID)
	assert.True(t, books[0].Featured)
	assert.Equal(t, time.Date(2015, 10, 26, 0, 0, 0, 0, time.UTC), books[0].DatePublished)

	assert.Equal(t, []string{"fiction", "scifi"}, books[1].Genres)
	assert.Equal(t, 1965, books[1].DatePublished.Year())
	// out-of-range ratings are kept, clamped only for display
	assert.Equal(t, 7.5, books[1].Rating)
	assert.Equal(t, 5.0, books[1].DisplayRating())
}

func TestLoadEmpty(t *testing.T) {
	books, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestLoadRejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "books:\n  - title: T\n    author: A\n    genre: [x]\n    date_published: 2000-01-01\n"},
		{"empty genre", "books:\n  - id: b1\n    title: T\n    author: A\n    genre: []\n    date_published: 2000-01-01\n"},
		{"negative price", "books:\n  - id: b1\n    title: T\n    author: A\n    genre: [x]\n    date_published: 2000-01-01\n    price: -1\n"},
		{"bad date", "books:\n  - id: b1\n    title: T\n    author: A\n    genre: [x]\n    date_published: yesterday\n"},
		{"not yaml", "books: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	doc := "books:\n" +
		"  - {id: b1, title: T, author: A, genre: [x], date_published: 2000-01-01}\n" +
		"  - {id: b1, title: U, author: B, genre: [y], date_published: 2001-01-01}\n"

	_, err := Load(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	books, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, books, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSampleCatalogLoads(t *testing.T) {
	books, err := LoadFile(filepath.Join("..", "..", "books.yaml"))
	require.NoError(t, err)
	require.Len(t, books, 10)

	featured := 0
	for _, b := range books {
		if b.Featured {
			featured++
		}
	}
	assert.Equal(t, 5, featured)
	assert.Equal(t, 1871, books[4].DatePublished.Year())
}

func TestRecordBook(t *testing.T) {
	rec := Record{
		ID:            "b9",
		Title:         "Solaris",
		Author:        "Stanislaw Lem",
		Genre:         []string{" scifi ", "scifi"},
		DatePublished: "1961",
		Rating:        4.1,
		Price:         8,
	}
	book, err := rec.Book()
	require.NoError(t, err)
	assert.Equal(t, []string{"scifi"}, book.Genres)
	assert.Equal(t, 1961, book.DatePublished.Year())

	rec.Title = ""
	_, err = rec.Book()
	assert.Error(t, err)
}
