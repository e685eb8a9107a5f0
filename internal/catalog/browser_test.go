package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrowserResetsPageOnCriteriaChange(t *testing.T) {
	b := NewBrowser(DefaultCriteria(), 2)

	b.SetPage(3)
	b.SetSearch("go")
	assert.Equal(t, 1, b.Page())

	b.SetPage(2)
	b.SetGenre("programming")
	assert.Equal(t, 1, b.Page())

	b.SetPage(2)
	b.SetSort(SortByPrice, Descending)
	assert.Equal(t, 1, b.Page())

	b.SetPage(2)
	b.SetPageSize(4)
	assert.Equal(t, 1, b.Page())
	assert.Equal(t, 4, b.PageSize())
}

func TestBrowserKeepsPageWhenNothingChanges(t *testing.T) {
	b := NewBrowser(DefaultCriteria(), 2)
	b.SetPage(3)

	b.SetSearch("")
	b.SetGenre(AllGenres)
	b.SetSort(SortByTitle, Ascending)
	b.SetPageSize(2)
	b.SetPageSize(0)

	assert.Equal(t, 3, b.Page())
}

func TestBrowserResult(t *testing.T) {
	b := NewBrowser(DefaultCriteria(), 2)
	b.SetGenre("scifi")
	b.SetSort(SortByPrice, Ascending)

	r := b.Result(sampleBooks())
	assert.Equal(t, []string{"b3", "b2"}, ids(r.Books))
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, 2, r.TotalPages)
	assert.False(t, r.NoMatches)

	b.SetPage(5)
	r = b.Result(sampleBooks())
	assert.Empty(t, r.Books)
	assert.False(t, r.NoMatches)

	b.SetSearch("no such book")
	r = b.Result(sampleBooks())
	assert.True(t, r.NoMatches)
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, 0, r.TotalPages)
}

func TestNewBrowserDefaultPageSize(t *testing.T) {
	b := NewBrowser(DefaultCriteria(), 0)
	assert.Equal(t, DefaultPageSize, b.PageSize())
	assert.Equal(t, DefaultCriteria(), b.Criteria())
}
