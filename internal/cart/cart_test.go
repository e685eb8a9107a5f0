package cart

import (
	"encoding/json"
	"testing"

	"github.com/bookstore/services/storefront/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroCartIsEmpty(t *testing.T) {
	var c Cart
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.TotalItemCount())
	assert.Empty(t, c.Lines())

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestWithDoesNotMutateReceiver(t *testing.T) {
	c := New().with("b1", 2)
	next := c.with("b1", 5).with("b2", 1)

	assert.Equal(t, 2, c.Quantity("b1"))
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 5, next.Quantity("b1"))
	assert.Equal(t, 2, next.Len())
}

func TestLinesSortedByBookID(t *testing.T) {
	c := New().with("zeta", 1).with("alpha", 2).with("mid", 3)

	assert.Equal(t, []Line{
		{BookID: "alpha", Quantity: 2},
		{BookID: "mid", Quantity: 3},
		{BookID: "zeta", Quantity: 1},
	}, c.Lines())
}

func TestResolveMarksOrphans(t *testing.T) {
	idx := catalog.NewIndex([]catalog.Book{
		{ID: "b1", Title: "Dune", Price: 10},
		{ID: "b2", Title: "Hyperion", Price: 2.5},
	})
	c := New().with("b1", 2).with("b2", 4).with("gone", 3)

	s := Resolve(c, idx)

	require.Len(t, s.Lines, 3)
	assert.Equal(t, "Dune", s.Lines[0].Book.Title)
	assert.Equal(t, 20.0, s.Lines[0].Subtotal)
	assert.Equal(t, 10.0, s.Lines[1].Subtotal)

	orphan := s.Lines[2]
	assert.Equal(t, "gone", orphan.BookID)
	assert.True(t, orphan.Orphaned)
	assert.Nil(t, orphan.Book)
	assert.Zero(t, orphan.Subtotal)

	assert.Equal(t, 9, s.TotalItemCount)
	assert.Equal(t, 30.0, s.Subtotal)
}

func TestResolveEmptyCart(t *testing.T) {
	s := Resolve(New(), catalog.NewIndex(nil))
	assert.NotNil(t, s.Lines)
	assert.Empty(t, s.Lines)
	assert.Zero(t, s.TotalItemCount)
}
